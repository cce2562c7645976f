package config_test

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/internal/config"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

const debugManifest = `
[DebugKeyMgmt]
type = "encryption"
name = "debug_key_management"
author = "Trevor Gross"
description = "Debug key management plugin"
license = "gpl"
maturity = "experimental"
version = "0.1"
encryption = false

[[DebugKeyMgmt.variables]]
name = "version"
type = "uint"
description = "Latest key version"
options = ["optional_cmd_arg"]
default = 1
min = 1
max = 100
`

const storageManifest = `
[MemStore]
type = "storage_engine"
name = "memstore"
author = "Dev"
description = "In-memory storage"
license = "gpl"
maturity = "alpha"
version = "1.2"
handlerton = "Engine"
handler = "Table"
`

var _ = Describe("ParseManifest", func() {
	It("decodes a declaration keyed by its main type", func() {
		m, err := config.ParseManifest([]byte(debugManifest))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Plugins).To(HaveLen(1))

		entry := m.Plugins[0]
		decl := entry.Declaration
		Expect(decl.Main).To(Equal("DebugKeyMgmt"))
		Expect(decl.Type).To(Equal(plugin.TypeEncryption))
		Expect(decl.Name).To(Equal("debug_key_management"))
		Expect(decl.License).To(Equal(plugin.LicenseGPL))
		Expect(decl.Maturity).To(Equal(plugin.MaturityExperimental))
		Expect(decl.Encryption).NotTo(BeNil())
		Expect(decl.Encryption.IsBool()).To(BeTrue())
		Expect(decl.Encryption.Bool).To(BeFalse())

		Expect(entry.Order).To(Equal([]string{
			"type", "name", "author", "description", "license",
			"maturity", "version", "encryption", "variables",
		}))
	})

	It("normalises variables", func() {
		m, err := config.ParseManifest([]byte(debugManifest))
		Expect(err).NotTo(HaveOccurred())

		vars := m.Plugins[0].Declaration.Variables
		Expect(vars).To(HaveLen(1))
		Expect(vars[0].Kind).To(Equal(sysvar.KindUint))
		Expect(vars[0].Options).To(Equal([]sysvar.Option{sysvar.OptionalCmdArg}))
		Expect(vars[0].Default).To(BeEquivalentTo(1))
	})

	It("reads several plugin tables in file order", func() {
		m, err := config.ParseManifest([]byte(storageManifest + debugManifest))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Plugins).To(HaveLen(2))
		Expect(m.Plugins[0].Declaration.Main).To(Equal("MemStore"))
		Expect(m.Plugins[0].Declaration.Handler).To(Equal("Table"))
		Expect(m.Plugins[1].Declaration.Main).To(Equal("DebugKeyMgmt"))
	})

	It("accepts a cipher type name", func() {
		m, err := config.ParseManifest([]byte(`
[Keys]
type = "encryption"
name = "aes_keys"
author = "Dev"
description = "AES"
license = "bsd"
maturity = "beta"
version = "1.0"
encryption = "AESCipher"
decryption = "AESDecipher"
`))
		Expect(err).NotTo(HaveOccurred())

		decl := m.Plugins[0].Declaration
		Expect(decl.Encryption.Type).To(Equal("AESCipher"))
		Expect(decl.Decryption).To(Equal("AESDecipher"))
	})

	DescribeTable("rejects invalid manifests",
		func(text, message string) {
			_, err := config.ParseManifest([]byte(text))
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, config.ErrInvalidManifest)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(message))
		},
		Entry("no tables", "", "no plugin tables"),
		Entry("key outside a table", `name = "x"`, "outside a plugin table"),
		Entry("fields out of order", `
[P]
name = "p"
type = "encryption"
author = "a"
description = "d"
license = "gpl"
maturity = "alpha"
version = "1.0"
`, "fields not in expected order"),
		Entry("missing handler", `
[P]
type = "storage_engine"
name = "p"
author = "a"
description = "d"
license = "gpl"
maturity = "alpha"
version = "1.0"
handlerton = "E"
`, "field 'handler' is expected"),
		Entry("unknown variable key", `
[P]
type = "encryption"
name = "p"
author = "a"
description = "d"
license = "gpl"
maturity = "alpha"
version = "1.0"

[[P.variables]]
name = "v"
type = "bool"
description = "d"
colour = "blue"
`, "unexpected field 'colour' for sysvar 'v'"),
	)

	It("marks malformed TOML", func() {
		_, err := config.ParseManifest([]byte("[P\n"))
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, config.ErrInvalidTOML)).To(BeTrue())
	})
})

var _ = Describe("LoadManifest", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("records the path", func() {
		path := filepath.Join(dir, config.ManifestFile)
		Expect(os.WriteFile(path, []byte(storageManifest), 0o644)).To(Succeed())

		m, err := config.LoadManifest(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Path).To(Equal(path))
	})

	It("reports a missing manifest", func() {
		_, err := config.LoadManifest(filepath.Join(dir, "nope.toml"))
		Expect(errors.Is(err, config.ErrConfigNotFound)).To(BeTrue())
	})

	It("prefixes errors with the path", func() {
		path := filepath.Join(dir, config.ManifestFile)
		Expect(os.WriteFile(path, []byte(`name = "x"`), 0o644)).To(Succeed())

		_, err := config.LoadManifest(path)
		Expect(err).To(MatchError(ContainSubstring(path)))
	})
})
