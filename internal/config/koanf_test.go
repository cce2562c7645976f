package config_test

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/pkg/logger"
)

var _ = Describe("KoanfLoader", func() {
	var (
		workDir string
		environ []string
		loader  *config.KoanfLoader
	)

	writeOptions := func(content string) {
		path := filepath.Join(workDir, config.OptionsFile)
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	}

	BeforeEach(func() {
		workDir = GinkgoT().TempDir()
		environ = nil
		loader = config.NewKoanfLoaderWithDir(workDir, config.WithEnviron(func() []string {
			return environ
		}))
	})

	Describe("defaults", func() {
		It("returns the default options when nothing is configured", func() {
			opts, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(opts).To(Equal(config.DefaultOptions()))
		})

		It("reports a missing options file", func() {
			Expect(loader.HasOptionsFile()).To(BeFalse())
			Expect(loader.OptionsPath()).To(Equal(filepath.Join(workDir, "mariabridge.toml")))
		})
	})

	Describe("precedence", func() {
		BeforeEach(func() {
			writeOptions(`
out_dir = "from_file"
package = "fromfile"
mode = "static"
log_level = "debug"
`)
		})

		It("reads mariabridge.toml", func() {
			Expect(loader.HasOptionsFile()).To(BeTrue())

			opts, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.OutDir).To(Equal("from_file"))
			Expect(opts.Package).To(Equal("fromfile"))
			Expect(opts.Mode).To(Equal(config.ModeStatic))
			Expect(opts.LogLevel).To(Equal(logger.LevelDebug))
		})

		It("lets environment variables override the file", func() {
			environ = []string{"MARIABRIDGE_OUT_DIR=from_env", "MARIABRIDGE_MODE=dynamic"}

			opts, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.OutDir).To(Equal("from_env"))
			Expect(opts.Mode).To(Equal(config.ModeDynamic))
			Expect(opts.Package).To(Equal("fromfile"))
		})

		It("lets flags override everything", func() {
			environ = []string{"MARIABRIDGE_OUT_DIR=from_env"}

			opts, err := loader.Load(map[string]any{
				"out-dir":   "from_flag",
				"manifests": []string{"plugins/**/mariadb-plugin.toml"},
				"package":   "",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.OutDir).To(Equal("from_flag"))
			Expect(opts.Package).To(Equal("fromfile"))
			Expect(opts.Manifests).To(Equal([]string{"plugins/**/mariadb-plugin.toml"}))
		})

		It("maps --static to the static mode", func() {
			writeOptions(`mode = "dynamic"`)

			opts, err := loader.Load(map[string]any{"static": true})
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.Mode).To(Equal(config.ModeStatic))
		})
	})

	Describe("environment", func() {
		It("splits list variables on commas", func() {
			environ = []string{"MARIABRIDGE_CFLAGS=-I/usr/include/mysql,-I/usr/include/mysql/server"}

			opts, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.CFlags).To(Equal([]string{"-I/usr/include/mysql", "-I/usr/include/mysql/server"}))
		})

		It("ignores runtime-only variables", func() {
			environ = []string{"MARIABRIDGE_LOG_FILE=/tmp/plugin.log", "MARIABRIDGE_LOG_LEVEL=warn"}

			opts, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.LogLevel).To(Equal(logger.LevelWarn))
		})

		It("ignores variables without the prefix", func() {
			environ = []string{"OUT_DIR=elsewhere"}

			opts, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.OutDir).To(Equal("mariabridge_gen"))
		})
	})

	Describe("errors", func() {
		It("rejects a world-writable options file", func() {
			writeOptions(`out_dir = "x"`)
			Expect(os.Chmod(loader.OptionsPath(), 0o666)).To(Succeed())

			_, err := loader.Load(nil)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, config.ErrInvalidPermissions)).To(BeTrue())
		})

		It("marks malformed TOML", func() {
			writeOptions(`out_dir = `)

			_, err := loader.Load(nil)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, config.ErrInvalidTOML)).To(BeTrue())
		})

		It("validates the merged options", func() {
			writeOptions(`package = "not-an-ident"`)

			_, err := loader.Load(nil)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
		})

		It("skips validation when asked", func() {
			writeOptions(`package = "not-an-ident"`)

			opts, err := loader.LoadWithoutValidation(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(opts.Package).To(Equal("not-an-ident"))
		})
	})
})
