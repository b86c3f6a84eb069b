package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hamed0406/statuscheck/internal/config"
	"github.com/hamed0406/statuscheck/internal/domain"
)

var _ = Describe("Config", func() {
	var tempDir string

	setenv := func(key, value string) {
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(os.Unsetenv, key)
	}

	writeConfig := func(content string) {
		path := filepath.Join(tempDir, "statuscheck.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
	}

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
	})

	Describe("Load", func() {
		Context("without a config file", func() {
			It("should reproduce the built-in behavior", func() {
				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.Targets).To(Equal(config.DefaultTargets))
				Expect(cfg.Concurrency).To(Equal(5))
				Expect(cfg.CheckTimeout()).To(Equal(5 * time.Second))
				Expect(cfg.Log.File).To(Equal("status_checker.log"))
				Expect(cfg.Output.File).To(Equal("status_results.json"))
				Expect(cfg.Schema()).To(Equal(domain.SchemaLegacy))
			})

			It("should keep target order in Endpoints", func() {
				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Endpoints()).To(Equal([]domain.Endpoint{
					"https://google.com",
					"https://github.com",
					"https://nonexistent.xyz",
				}))
			})
		})

		Context("with a valid config file", func() {
			BeforeEach(func() {
				writeConfig(`
targets:
  - "http://localhost:8081/health"
  - "https://example.com"
concurrency: 2
timeout: "750ms"
log:
  file: "logs/checks.log"
  level: "debug"
output:
  file: "out/results.json"
  schema: "tagged"
api:
  addr: ":9090"
`)
			})

			It("should load every section", func() {
				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Targets).To(HaveLen(2))
				Expect(cfg.Concurrency).To(Equal(2))
				Expect(cfg.CheckTimeout()).To(Equal(750 * time.Millisecond))
				Expect(cfg.Log.Level).To(Equal("debug"))
				Expect(cfg.Output.File).To(Equal("out/results.json"))
				Expect(cfg.Schema()).To(Equal(domain.SchemaTagged))
				Expect(cfg.API.Addr).To(Equal(":9090"))
			})

			It("should let environment variables override the file", func() {
				setenv("STATUSCHECK_CONCURRENCY", "7")
				setenv("STATUSCHECK_OUTPUT_SCHEMA", "legacy")

				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Concurrency).To(Equal(7))
				Expect(cfg.Schema()).To(Equal(domain.SchemaLegacy))
			})
		})

		Context("with a comma separated target list in the environment", func() {
			It("should split it into targets", func() {
				setenv("STATUSCHECK_TARGETS", "https://a.example.com,https://b.example.com")

				cfg, err := config.Load(tempDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Targets).To(Equal([]string{"https://a.example.com", "https://b.example.com"}))
			})
		})

		Context("with a malformed config file", func() {
			It("should return the parse error", func() {
				writeConfig("targets: [unterminated")
				_, err := config.Load(tempDir)
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Validate", func() {
		var cfg config.Config

		BeforeEach(func() {
			cfg = config.Config{
				Targets:     []string{"https://example.com"},
				Concurrency: 5,
				Timeout:     "5s",
				Log:         config.LogConfig{File: "status_checker.log", Level: "info"},
				Output:      config.OutputConfig{File: "status_results.json", Schema: "legacy"},
				API:         config.APIConfig{Addr: "127.0.0.1:8080"},
			}
		})

		It("should accept a complete config", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		DescribeTable("should reject invalid values",
			func(mutate func(*config.Config)) {
				mutate(&cfg)
				Expect(cfg.Validate()).NotTo(Succeed())
			},
			Entry("no targets", func(c *config.Config) { c.Targets = nil }),
			Entry("non-http target", func(c *config.Config) { c.Targets = []string{"ftp://example.com"} }),
			Entry("relative target", func(c *config.Config) { c.Targets = []string{"example.com/path"} }),
			Entry("empty target", func(c *config.Config) { c.Targets = []string{""} }),
			Entry("zero concurrency", func(c *config.Config) { c.Concurrency = 0 }),
			Entry("negative concurrency", func(c *config.Config) { c.Concurrency = -1 }),
			Entry("unparseable timeout", func(c *config.Config) { c.Timeout = "soon" }),
			Entry("zero timeout", func(c *config.Config) { c.Timeout = "0s" }),
			Entry("unknown log level", func(c *config.Config) { c.Log.Level = "loud" }),
			Entry("missing log file", func(c *config.Config) { c.Log.File = "" }),
			Entry("unknown schema", func(c *config.Config) { c.Output.Schema = "yaml" }),
			Entry("missing output file", func(c *config.Config) { c.Output.File = "" }),
			Entry("bad api address", func(c *config.Config) { c.API.Addr = "localhost" }),
		)
	})
})
