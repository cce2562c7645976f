package codegen_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/mariabridge/internal/codegen"
	"github.com/smykla-skalski/mariabridge/internal/config"
)

func TestCodegen(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Codegen Suite")
}

const keysManifest = `
[DebugKeyMgmt]
type = "encryption"
name = "debug_key_management"
author = "Trevor Gross"
description = "Debug key management plugin"
license = "gpl"
maturity = "experimental"
version = "0.1"
init = "DebugKeyMgmt"
encryption = false

[[DebugKeyMgmt.variables]]
name = "test_sysvar_i32"
type = "int"
description = "An integer"
options = ["optional_cmd_arg"]
default = 67

[[DebugKeyMgmt.variables]]
name = "test_mode"
type = "enum"
description = "A mode"
values = ["fast", "safe"]
default = "safe"

[AesGcm]
type = "encryption"
name = "encryption_aes"
author = "Dev"
description = "AES-256-GCM"
license = "bsd"
maturity = "beta"
version = "1.2"
encryption = "Encryptor"
decryption = "Decryptor"
`

const storeManifest = `
[Engine]
type = "storage_engine"
name = "memstore"
author = "Dev"
description = "In-memory storage"
license = "gpl"
maturity = "alpha"
version = "0.3"
init = "Engine"
handlerton = "Engine"
handler = "Table"
`

func generate(manifest string, mode config.BuildMode) map[string]string {
	m, err := config.ParseManifest([]byte(manifest))
	Expect(err).NotTo(HaveOccurred())

	files, err := codegen.Generate(&codegen.Input{
		Manifest:   m,
		ImportPath: "example.com/plugins/keys",
		CFlags:     []string{"-I/usr/include/mysql/server"},
		Mode:       mode,
	})
	Expect(err).NotTo(HaveOccurred())

	out := map[string]string{}
	for _, f := range files {
		out[f.Name] = string(f.Content)
	}

	return out
}

var _ = Describe("Generate", func() {
	var files map[string]string

	BeforeEach(func() {
		files = generate(keysManifest, config.ModeDynamic)
	})

	It("renders every file with the generated marker", func() {
		Expect(files).To(HaveLen(len(codegen.Files())))

		for _, name := range codegen.Files() {
			Expect(files[name]).To(ContainSubstring(codegen.Marker), name)
		}
	})

	It("declares the records in the header", func() {
		h := files[codegen.HeaderFile]
		Expect(h).To(ContainSubstring("#include <mysql/plugin_encryption.h>"))
		Expect(h).To(ContainSubstring("extern int mb_plugin_init(int idx, void *arg);"))
		Expect(h).To(ContainSubstring("extern struct st_mariadb_encryption mb_p0_info;"))
		Expect(h).To(ContainSubstring("extern struct st_mysql_sys_var *mb_p0_sysvars[3];"))
		Expect(h).To(ContainSubstring("extern struct st_mariadb_encryption mb_p1_info;"))
		Expect(h).NotTo(ContainSubstring("mb_p1_sysvars"))
	})

	It("renders sysvar records with plugin scoped cells", func() {
		r := files[codegen.RecordsFile]
		Expect(r).To(ContainSubstring("static int mb_p0_test_sysvar_i32_value;"))
		Expect(r).To(ContainSubstring(
			`static MYSQL_SYSVAR_INT(test_sysvar_i32, mb_p0_test_sysvar_i32_value, PLUGIN_VAR_OPCMDARG, "An integer", NULL, NULL, 67,`))
		Expect(r).To(ContainSubstring(`static const char *mb_p0_test_mode_value_names[] = { "fast", "safe", NULL };`))
		Expect(r).To(ContainSubstring("&mb_p0_test_mode_value_typelib"))
		Expect(r).To(ContainSubstring("MYSQL_SYSVAR(test_sysvar_i32),\n\tMYSQL_SYSVAR(test_mode),\n\tNULL"))
	})

	It("binds each plugin's index into its wrappers", func() {
		r := files[codegen.RecordsFile]
		Expect(r).To(ContainSubstring("int mb_p0_init(void *p) { return mb_plugin_init(0, p); }"))
		Expect(r).To(ContainSubstring("int mb_p1_deinit(void *p) { return mb_plugin_deinit(1, p); }"))
		Expect(r).To(ContainSubstring("return mb_encryption_get_key(1, key_id, version, dst, dst_len);"))
	})

	It("leaves the builtin cipher slots empty for key management plugins", func() {
		r := files[codegen.RecordsFile]
		Expect(r).NotTo(ContainSubstring("mb_p0_crypt_ctx_init"))
		Expect(r).To(ContainSubstring("mb_p0_get_key,\n\tNULL, NULL, NULL, NULL, NULL\n};"))
		Expect(r).To(ContainSubstring("mb_p1_crypt_ctx_init,"))
	})

	It("selects the loader symbols by build tag", func() {
		dyn := files[codegen.SymbolsDynamicFile]
		Expect(dyn).To(HavePrefix("//go:build !mariadb_static\n"))
		Expect(dyn).To(ContainSubstring("int _maria_plugin_interface_version_ = MARIA_PLUGIN_INTERFACE_VERSION;"))
		Expect(dyn).To(ContainSubstring("struct st_maria_plugin _maria_plugin_declarations_[] = {"))
		Expect(dyn).To(ContainSubstring("{ 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0 }"))

		static := files[codegen.SymbolsStaticFile]
		Expect(static).To(HavePrefix("//go:build mariadb_static\n"))
		Expect(static).To(ContainSubstring("int builtin_maria_debug_key_management_sizeof_struct_st_plugin"))
		Expect(static).To(ContainSubstring("struct st_maria_plugin builtin_maria_debug_key_management_plugin[] = {"))
	})

	It("fills the descriptors in manifest order", func() {
		dyn := files[codegen.SymbolsDynamicFile]
		Expect(dyn).To(ContainSubstring("MariaDB_ENCRYPTION_PLUGIN,\n\t\t&mb_p0_info,\n\t\t\"debug_key_management\","))
		Expect(dyn).To(ContainSubstring("PLUGIN_LICENSE_GPL"))
		Expect(dyn).To(ContainSubstring("0x0001,\n\t\tNULL,\n\t\tmb_p0_sysvars,\n\t\t\"0.1\",\n\t\tMariaDB_PLUGIN_MATURITY_EXPERIMENTAL"))
		Expect(dyn).To(ContainSubstring("0x0102,\n\t\tNULL,\n\t\tNULL,\n\t\t\"1.2\",\n\t\tMariaDB_PLUGIN_MATURITY_BETA"))
		Expect(dyn).To(ContainSubstring("PLUGIN_LICENSE_BSD"))
	})

	It("emits a formatted, parseable registration", func() {
		src := files[codegen.RegisterFile]

		_, err := parser.ParseFile(token.NewFileSet(), codegen.RegisterFile, src, parser.AllErrors)
		Expect(err).NotTo(HaveOccurred())

		Expect(src).To(ContainSubstring(`impl "example.com/plugins/keys"`))
		Expect(src).To(ContainSubstring("#cgo CFLAGS: -I/usr/include/mysql/server"))
		Expect(src).To(ContainSubstring("km := new(impl.DebugKeyMgmt)"))
		Expect(src).To(ContainSubstring("bridge.NewKeyManagement(km)"))
		Expect(src).To(ContainSubstring("bridge.NewEncryption[impl.Encryptor, impl.Decryptor](km)"))
		Expect(src).To(MatchRegexp(`Init:\s+km,`))
		Expect(src).To(MatchRegexp(`Default:\s+int64\(67\)`))
		Expect(src).To(MatchRegexp(`Options:\s+\[\]sysvar.Option\{sysvar.OptionalCmdArg\}`))
		Expect(src).To(ContainSubstring("sysvar.Attach(decl.Variables, (*unsafe.Pointer)(unsafe.Pointer(&C.mb_p0_sysvars[0])))"))
		Expect(src).To(ContainSubstring("go build -buildmode=c-shared"))
		Expect(src).To(ContainSubstring("func main() {}"))
	})

	It("is deterministic", func() {
		Expect(generate(keysManifest, config.ModeDynamic)).To(Equal(files))
	})

	It("names the string kinds by their constants", func() {
		out := generate(storeManifest+`
[[Engine.variables]]
name = "memstore_path"
type = "string"
description = "A path"

[[Engine.variables]]
name = "memstore_label"
type = "const_string"
description = "A label"
`, config.ModeDynamic)

		src := out[codegen.RegisterFile]
		Expect(src).To(MatchRegexp(`Kind:\s+sysvar.KindStr,`))
		Expect(src).To(MatchRegexp(`Kind:\s+sysvar.KindConstString,`))
		Expect(src).NotTo(ContainSubstring("sysvar.KindString"))
	})

	It("wires storage engines around one engine value", func() {
		out := generate(storeManifest, config.ModeStatic)

		src := out[codegen.RegisterFile]
		Expect(src).To(ContainSubstring("engine := new(impl.Engine)"))
		Expect(src).To(ContainSubstring("bridge.NewStorageWith[impl.Table](engine)"))
		Expect(src).To(MatchRegexp(`Init:\s+engine,`))
		Expect(src).NotTo(ContainSubstring(`"unsafe"`))
		Expect(src).To(ContainSubstring("go build -tags mariadb_static -buildmode=c-archive"))

		Expect(out[codegen.HeaderFile]).NotTo(ContainSubstring("plugin_encryption.h"))
		Expect(out[codegen.RecordsFile]).To(ContainSubstring(
			"struct st_mysql_storage_engine mb_p0_info = { MYSQL_HANDLERTON_INTERFACE_VERSION };"))
		Expect(out[codegen.SymbolsDynamicFile]).To(ContainSubstring("MYSQL_STORAGE_ENGINE_PLUGIN,"))
	})
})

var _ = Describe("Generate errors", func() {
	parse := func(manifest string) *config.Manifest {
		m, err := config.ParseManifest([]byte(manifest))
		Expect(err).NotTo(HaveOccurred())

		return m
	}

	It("requires an import path", func() {
		_, err := codegen.Generate(&codegen.Input{Manifest: parse(storeManifest)})
		Expect(errors.Is(err, codegen.ErrUnsupported)).To(BeTrue())
	})

	It("allows one storage engine per library", func() {
		m := parse(storeManifest)
		m.Plugins = append(m.Plugins, m.Plugins[0])

		_, err := codegen.Generate(&codegen.Input{Manifest: m, ImportPath: "example.com/x"})
		Expect(err).To(MatchError(ContainSubstring("2 storage engines")))
	})

	It("rejects types outside the plugin package", func() {
		m := parse(storeManifest)
		m.Plugins[0].Declaration.Handler = "other.Table"

		_, err := codegen.Generate(&codegen.Input{Manifest: m, ImportPath: "example.com/x"})
		Expect(err).To(MatchError(ContainSubstring("type 'other.Table' must be declared in the plugin package")))
	})

	It("rejects a variable name used by two plugins", func() {
		m := parse(keysManifest)
		m.Plugins[1].Declaration.Variables = m.Plugins[0].Declaration.Variables[:1]

		_, err := codegen.Generate(&codegen.Input{Manifest: m, ImportPath: "example.com/x"})
		Expect(err).To(MatchError(ContainSubstring("sysvar 'test_sysvar_i32' is declared by both")))
	})
})

var _ = Describe("ImportPath", func() {
	var root string

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/plugins\n\ngo 1.26\n"), 0o644)).To(Succeed())
		Expect(os.MkdirAll(filepath.Join(root, "keys", "debug"), 0o755)).To(Succeed())
	})

	It("joins the module path and the package directory", func() {
		p, err := codegen.ImportPath(filepath.Join(root, "keys", "debug"))
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal("example.com/plugins/keys/debug"))
	})

	It("returns the module path at the root", func() {
		p, err := codegen.ImportPath(root)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal("example.com/plugins"))
	})

	It("fails without a module directive", func() {
		Expect(os.WriteFile(filepath.Join(root, "go.mod"), []byte("go 1.26\n"), 0o644)).To(Succeed())

		_, err := codegen.ImportPath(root)
		Expect(err).To(MatchError(ContainSubstring("has no module directive")))
	})
})

var _ = Describe("Write and Diff", func() {
	var (
		dir   string
		files []codegen.File
	)

	BeforeEach(func() {
		dir = filepath.Join(GinkgoT().TempDir(), "gen")
		files = []codegen.File{
			{Name: "a.c", Content: []byte("int a;\n")},
			{Name: "b.go", Content: []byte("package main\n")},
		}
	})

	It("diffs everything before the first write", func() {
		d, err := codegen.Diff(dir, files)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(ContainSubstring("+int a;"))
		Expect(d).To(ContainSubstring("b.go (generated)"))
	})

	It("writes only changed files", func() {
		written, err := codegen.Write(dir, files)
		Expect(err).NotTo(HaveOccurred())
		Expect(written).To(ConsistOf("a.c", "b.go"))

		d, err := codegen.Diff(dir, files)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeEmpty())

		files[0].Content = []byte("int a = 1;\n")

		d, err = codegen.Diff(dir, files)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(ContainSubstring("-int a;"))
		Expect(d).To(ContainSubstring("+int a = 1;"))

		written, err = codegen.Write(dir, files)
		Expect(err).NotTo(HaveOccurred())
		Expect(written).To(Equal([]string{"a.c"}))
	})
})
