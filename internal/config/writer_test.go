package config_test

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/internal/config"
)

var _ = Describe("Writer", func() {
	const directive = "#:schema ./schema/mariabridge.v1.schema.json"

	var (
		workDir string
		writer  *config.Writer
	)

	BeforeEach(func() {
		workDir = GinkgoT().TempDir()
		writer = config.NewWriter(workDir, directive)
	})

	It("prepends the directive", func() {
		data, err := writer.Encode(config.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.SplitN(string(data), "\n", 2)[0]).To(Equal(directive))
		Expect(string(data)).To(ContainSubstring(`out_dir = 'mariabridge_gen'`))
	})

	It("round-trips through the loader", func() {
		opts := config.DefaultOptions()
		opts.Package = "memstore"
		opts.CFlags = []string{"-I/usr/include/mysql/server"}

		Expect(writer.WriteOptions(opts, false)).To(Succeed())

		loaded, err := config.NewKoanfLoaderWithDir(workDir, config.WithEnviron(func() []string {
			return nil
		})).Load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(opts))
	})

	It("refuses to overwrite without force", func() {
		Expect(writer.WriteOptions(config.DefaultOptions(), false)).To(Succeed())

		err := writer.WriteOptions(config.DefaultOptions(), false)
		Expect(errors.Is(err, config.ErrOptionsExist)).To(BeTrue())
		Expect(writer.WriteOptions(config.DefaultOptions(), true)).To(Succeed())
	})

	It("writes files readable by the loader's permission check", func() {
		Expect(writer.WriteOptions(config.DefaultOptions(), false)).To(Succeed())

		info, err := os.Stat(writer.OptionsPath())
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Mode().Perm() & 0o002).To(BeZero())
	})

	It("rejects nil options", func() {
		Expect(writer.WriteFile(writer.OptionsPath(), nil)).To(MatchError(config.ErrInvalidConfig))
	})
})
