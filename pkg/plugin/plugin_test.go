package plugin_test

import (
	"encoding/json"
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

func TestPlugin(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Plugin Suite")
}

func debugKeyMgmt() *plugin.Declaration {
	return &plugin.Declaration{
		Main:        "DebugKeyMgmt",
		Type:        plugin.TypeEncryption,
		Name:        "debug_key_management",
		Author:      "Trevor Gross",
		Description: "Debug key management plugin",
		License:     plugin.LicenseGPL,
		Maturity:    plugin.MaturityExperimental,
		Version:     "0.1",
		Encryption:  &plugin.CipherRef{Bool: false},
	}
}

func memstore() *plugin.Declaration {
	return &plugin.Declaration{
		Main:        "Memstore",
		Type:        plugin.TypeStorageEngine,
		Name:        "memstore",
		Author:      "mariabridge",
		Description: "In-memory rows",
		License:     plugin.LicenseBSD,
		Maturity:    plugin.MaturityAlpha,
		Version:     "1.2",
		Handlerton:  "Engine",
		Handler:     "Table",
	}
}

var _ = Describe("enums", func() {
	It("parses manifest names", func() {
		t, err := plugin.TypeString("storage_engine")
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(plugin.TypeStorageEngine))

		l, err := plugin.LicenseString("gpl")
		Expect(err).NotTo(HaveOccurred())
		Expect(l).To(Equal(plugin.LicenseGPL))

		m, err := plugin.MaturityString("stable")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(plugin.MaturityStable))
	})

	It("maps to server codes", func() {
		Expect(plugin.TypeEncryption.Code()).To(Equal(int32(abi.PluginTypeEncryption)))
		Expect(plugin.TypeStorageEngine.Code()).To(Equal(int32(abi.PluginTypeStorageEngine)))
		Expect(int(plugin.MaturityStable)).To(Equal(abi.PluginMaturityStable))
		Expect(plugin.TypeEncryption.InfoVersion()).To(Equal(int32(abi.EncryptionInterfaceVersion)))
	})
})

var _ = Describe("Validate", func() {
	canonical := []string{"type", "name", "author", "description", "license", "maturity", "version", "encryption"}

	It("accepts a complete encryption plugin", func() {
		Expect(plugin.Validate(debugKeyMgmt(), canonical)).To(Succeed())
	})

	It("rejects a missing name", func() {
		decl := debugKeyMgmt()
		decl.Name = ""

		order := []string{"type", "author", "description", "license", "maturity", "version"}
		err := plugin.Validate(decl, order)

		Expect(errors.Is(err, plugin.ErrInvalidDeclaration)).To(BeTrue())
		Expect(err).To(MatchError("field 'name' is expected for encryption plugins, but not provided"))
	})

	It("rejects storage fields on encryption plugins", func() {
		decl := debugKeyMgmt()
		decl.Handler = "Table"

		err := plugin.Validate(decl, nil)

		Expect(err).To(MatchError("field 'handler' is not expected for encryption plugins"))
	})

	It("requires handlerton and handler for storage engines", func() {
		decl := memstore()
		decl.Handlerton = ""

		err := plugin.Validate(decl, nil)

		Expect(err).To(MatchError("field 'handlerton' is expected for storage_engine plugins, but not provided"))
		Expect(plugin.Validate(memstore(), nil)).To(Succeed())
	})

	It("rejects encryption fields on storage engines", func() {
		decl := memstore()
		decl.Encryption = &plugin.CipherRef{Type: "Aes"}

		Expect(plugin.Validate(decl, nil)).To(MatchError("field 'encryption' is not expected for storage_engine plugins"))
	})

	It("reports the canonical order", func() {
		order := []string{"name", "type", "author", "description", "license", "maturity", "version", "encryption"}

		err := plugin.Validate(debugKeyMgmt(), order)

		Expect(err).To(MatchError(`fields not in expected order. reorder as: ["type", "name", "author", ` +
			`"description", "license", "maturity", "version", "encryption"]`))
	})

	It("rejects unknown fields", func() {
		order := append([]string{"type", "name", "frobnicate"}, canonical[2:]...)

		Expect(plugin.Validate(debugKeyMgmt(), order)).To(MatchError("unexpected field 'frobnicate'"))
	})

	It("requires encryption before decryption", func() {
		decl := debugKeyMgmt()
		decl.Encryption = nil
		decl.Decryption = "AesDec"

		Expect(plugin.Validate(decl, nil)).To(MatchError("cannot specify decryption type but not encryption"))

		decl.Encryption = &plugin.CipherRef{Bool: true}
		Expect(plugin.Validate(decl, nil)).To(MatchError("cannot specify decryption when encryption is a boolean"))

		decl.Encryption = &plugin.CipherRef{Type: "AesEnc"}
		Expect(plugin.Validate(decl, nil)).To(Succeed())
	})

	It("rejects a bad version", func() {
		decl := debugKeyMgmt()
		decl.Version = "1.2.3"

		err := plugin.Validate(decl, nil)

		Expect(err).To(MatchError(ContainSubstring(`expected a two position semvar string, e.g. "1.2"`)))
		Expect(errors.Is(err, plugin.ErrInvalidDeclaration)).To(BeTrue())
	})

	It("rejects names that are not C identifiers", func() {
		decl := debugKeyMgmt()
		decl.Name = "debug-key"

		Expect(plugin.Validate(decl, nil)).To(MatchError(ContainSubstring("must be a C identifier")))
	})

	It("passes sysvar errors through", func() {
		decl := debugKeyMgmt()
		decl.Variables = []sysvar.Var{{Name: "x", Kind: sysvar.KindEnum}}

		err := plugin.Validate(decl, nil)

		Expect(errors.Is(err, sysvar.ErrInvalid)).To(BeTrue())
		Expect(errors.Is(err, plugin.ErrInvalidDeclaration)).To(BeTrue())
	})
})

var _ = Describe("Ciphers", func() {
	DescribeTable("resolves encryptor and decryptor",
		func(enc *plugin.CipherRef, dec, wantEnc, wantDec string) {
			decl := debugKeyMgmt()
			decl.Encryption = enc
			decl.Decryption = dec

			e, d := decl.Ciphers()
			Expect(e).To(Equal(wantEnc))
			Expect(d).To(Equal(wantDec))
		},
		Entry("absent", nil, "", "", ""),
		Entry("builtin", &plugin.CipherRef{Bool: false}, "", "", ""),
		Entry("main type", &plugin.CipherRef{Bool: true}, "", "DebugKeyMgmt", "DebugKeyMgmt"),
		Entry("one type", &plugin.CipherRef{Type: "Aes"}, "", "Aes", "Aes"),
		Entry("split types", &plugin.CipherRef{Type: "AesEnc"}, "AesDec", "AesEnc", "AesDec"),
	)

	It("round trips through JSON", func() {
		for _, in := range []string{`true`, `"Aes"`} {
			var c plugin.CipherRef
			Expect(json.Unmarshal([]byte(in), &c)).To(Succeed())

			out, err := json.Marshal(&c)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(in))
		}
	})

	It("rejects other manifest values", func() {
		_, err := plugin.ParseCipherRef(3)
		Expect(errors.Is(err, plugin.ErrInvalidDeclaration)).To(BeTrue())
	})
})

var _ = Describe("Build", func() {
	It("lays out the descriptor and a zero sentinel", func() {
		reg, err := plugin.Build(debugKeyMgmt())
		Expect(err).NotTo(HaveOccurred())

		Expect(reg.InterfaceVersion).To(Equal(int32(0x010f)))
		Expect(reg.SizeofStruct).To(Equal(int32(unsafe.Sizeof(abi.PluginDescriptor{}))))
		Expect(reg.Sentinel().IsZero()).To(BeTrue())

		d := reg.Descriptor()
		Expect(d.Type).To(Equal(int32(abi.PluginTypeEncryption)))
		Expect(abi.GoString(d.Name)).To(Equal("debug_key_management"))
		Expect(abi.GoString(d.Author)).To(Equal("Trevor Gross"))
		Expect(abi.GoString(d.Descr)).To(Equal("Debug key management plugin"))
		Expect(abi.GoString(d.VersionInfo)).To(Equal("0.1"))
		Expect(d.Version).To(Equal(uint32(0x0001)))
		Expect(d.License).To(Equal(int32(abi.PluginLicenseGPL)))
		Expect(d.Maturity).To(Equal(uint32(abi.PluginMaturityExperimental)))
		Expect(d.SystemVars).To(BeNil())
	})

	It("points at the sysvar array", func() {
		decl := debugKeyMgmt()
		decl.Variables = []sysvar.Var{{Name: "test_flag", Kind: sysvar.KindBool, Default: true}}

		reg, err := plugin.Build(decl)
		Expect(err).NotTo(HaveOccurred())

		Expect(reg.Descriptor().SystemVars).To(Equal(reg.Sysvars.Array()))
		Expect(reg.Sysvars.Pointers()).To(HaveLen(2))
		Expect(decl.Variables[0].Default).To(Equal(true))
	})

	It("leaves the info record and entry points to the generated C", func() {
		reg, err := plugin.Build(memstore())
		Expect(err).NotTo(HaveOccurred())

		Expect(reg.Descriptor().Info).To(BeZero())
		Expect(reg.Descriptor().Init).To(BeZero())
		Expect(reg.Descriptor().Deinit).To(BeZero())
		Expect(reg.Descriptor().Type).To(Equal(int32(abi.PluginTypeStorageEngine)))
	})

	It("refuses invalid declarations", func() {
		decl := memstore()
		decl.Handler = ""

		_, err := plugin.Build(decl)
		Expect(errors.Is(err, plugin.ErrInvalidDeclaration)).To(BeTrue())
	})
})

var _ = Describe("LoaderSymbols", func() {
	It("names the dynamic symbols", func() {
		s := plugin.LoaderSymbols("memstore", false)

		Expect(s).To(Equal(plugin.Symbols{
			InterfaceVersion: "_maria_plugin_interface_version_",
			SizeofStruct:     "_maria_sizeof_struct_st_plugin_",
			Declarations:     "_maria_plugin_declarations_",
		}))
	})

	It("names the static symbols", func() {
		s := plugin.LoaderSymbols("memstore", true)

		Expect(s).To(Equal(plugin.Symbols{
			InterfaceVersion: "builtin_maria_memstore_plugin_interface_version",
			SizeofStruct:     "builtin_maria_memstore_sizeof_struct_st_plugin",
			Declarations:     "builtin_maria_memstore_plugin",
		}))
	})
})
