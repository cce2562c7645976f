// Package inspect checks a built plugin library the way the server's loader
// will: it looks the registration symbols up, reads the interface version
// and descriptor size, and lists the bridge entry points.
package inspect

import (
	"debug/elf"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"

	"github.com/smykla-skalski/mariabridge/pkg/abi"
	"github.com/smykla-skalski/mariabridge/pkg/bridge"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/version"
)

// ErrNotELF is returned for files debug/elf cannot read.
var ErrNotELF = errors.New("not an ELF object")

// Symbol is one entry of the dynamic or static symbol table.
type Symbol struct {
	Name    string
	Size    uint64
	Defined bool
	Weak    bool

	// Int32 is the initial value of a defined 4-byte data symbol.
	Int32 *int32
}

// Image is the part of a library the checks look at.
type Image struct {
	Path    string
	Size    int64
	Symbols map[string]Symbol
}

// Open reads the symbols of the ELF object at path.
func Open(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	f, err := elf.Open(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "%s: %s", path, ErrNotELF), ErrNotELF)
	}
	defer f.Close()

	img := &Image{Path: path, Size: info.Size(), Symbols: map[string]Symbol{}}

	syms, err := f.DynamicSymbols()
	if err != nil || len(syms) == 0 {
		// Objects and archives members only have a static table.
		if syms, err = f.Symbols(); err != nil && !errors.Is(err, elf.ErrNoSymbols) {
			return nil, errors.Wrapf(err, "failed to read symbols of %s", path)
		}
	}

	for _, s := range syms {
		sym := Symbol{
			Name:    s.Name,
			Size:    s.Size,
			Defined: s.Section != elf.SHN_UNDEF,
			Weak:    elf.ST_BIND(s.Info) == elf.STB_WEAK,
		}

		if sym.Defined && s.Size == 4 {
			sym.Int32 = readInt32(f, s)
		}

		img.Symbols[s.Name] = sym
	}

	return img, nil
}

func readInt32(f *elf.File, s elf.Symbol) *int32 {
	if int(s.Section) >= len(f.Sections) {
		return nil
	}

	sec := f.Sections[s.Section]
	if sec.Type != elf.SHT_PROGBITS || s.Value < sec.Addr {
		return nil
	}

	data, err := sec.Data()
	if err != nil {
		return nil
	}

	off := s.Value - sec.Addr
	if off+4 > uint64(len(data)) {
		return nil
	}

	v := int32(f.ByteOrder.Uint32(data[off:]))

	return &v
}

// Check is one loader requirement.
type Check struct {
	Name    string
	OK      bool
	Message string
	// ABI is set when a failure would make the server reject or misread
	// the library.
	ABI bool
}

// Report is the result of inspecting one library.
type Report struct {
	Path             string
	Size             string
	Symbols          plugin.Symbols
	InterfaceVersion int32
	SizeofStruct     int32
	Plugins          int
	Trampolines      []string
	HostBridge       []string
	Checks           []Check
}

// Inspect runs the loader checks on img. static names the plugin whose
// builtin symbols to look for; "" checks the shared library symbols.
func Inspect(img *Image, static string) *Report {
	r := &Report{
		Path:    img.Path,
		Size:    humanize.Bytes(uint64(max(img.Size, 0))),
		Symbols: plugin.LoaderSymbols(static, static != ""),
	}

	iv, ok := r.value(img, r.Symbols.InterfaceVersion)
	if ok {
		r.InterfaceVersion = iv
		r.checkVersion(iv)
	}

	size, ok := r.value(img, r.Symbols.SizeofStruct)
	if ok {
		r.SizeofStruct = size
		r.add(Check{
			Name:    "descriptor size",
			OK:      size == int32(abi.SizeofPluginDescriptor),
			Message: humanize.Comma(int64(size)) + " bytes, the bridge lays out " + humanize.Comma(int64(abi.SizeofPluginDescriptor)),
			ABI:     true,
		})
	}

	decls, ok := img.Symbols[r.Symbols.Declarations]
	switch {
	case !ok || !decls.Defined:
		r.add(Check{Name: r.Symbols.Declarations, Message: "symbol not defined", ABI: true})
	case size > 0 && decls.Size > 0:
		r.Plugins = int(decls.Size/uint64(size)) - 1
		r.add(Check{
			Name:    "declarations",
			OK:      r.Plugins > 0 && decls.Size%uint64(size) == 0,
			Message: humanize.Comma(int64(r.Plugins)) + " plugin(s) before the terminator",
			ABI:     true,
		})
	}

	for name, s := range img.Symbols {
		switch {
		case strings.HasPrefix(name, "mb_") && s.Defined:
			r.Trampolines = append(r.Trampolines, name)
		case strings.HasPrefix(name, "ha_bridge_"):
			r.HostBridge = append(r.HostBridge, name)
		}
	}

	slices.Sort(r.Trampolines)
	slices.Sort(r.HostBridge)

	r.add(Check{
		Name:    "bridge entry points",
		OK:      slices.Contains(r.Trampolines, "mb_plugin_init"),
		Message: humanize.Comma(int64(len(r.Trampolines))) + " exported",
	})

	for _, name := range r.HostBridge {
		if s := img.Symbols[name]; !s.Defined && !s.Weak {
			r.add(Check{Name: name, Message: "strong reference, the library will not load into a server without the handler bridge"})
		}
	}

	return r
}

func (r *Report) value(img *Image, name string) (int32, bool) {
	s, ok := img.Symbols[name]

	switch {
	case !ok || !s.Defined:
		r.add(Check{Name: name, Message: "symbol not defined", ABI: true})
	case s.Int32 == nil:
		r.add(Check{Name: name, Message: "not an initialized int", ABI: true})
	default:
		return *s.Int32, true
	}

	return 0, false
}

func (r *Report) checkVersion(iv int32) {
	if iv < 0 || iv > math.MaxUint16 {
		r.add(Check{Name: "interface version", Message: fmt.Sprintf("0x%X is not a 16-bit version", iv), ABI: true})

		return
	}

	got := version.Version(uint16(iv))
	want := version.Version(abi.MariaPluginInterfaceVersion)

	// The loader accepts any minor revision of its own major version.
	ok, err := got.Satisfies(fmt.Sprintf("^%d", want.Major()))
	if err != nil {
		ok = false
	}

	r.add(Check{Name: "interface version", OK: ok, Message: fmt.Sprintf("0x%04X (%s)", iv, got), ABI: true})
}

func (r *Report) add(c Check) { r.Checks = append(r.Checks, c) }

// Err joins the failed checks. ABI failures are marked with bridge.ErrABI.
func (r *Report) Err() error {
	var errs []error

	for _, c := range r.Checks {
		if c.OK {
			continue
		}

		err := errors.Newf("%s: %s", c.Name, c.Message)
		if c.ABI {
			err = errors.Mark(err, bridge.ErrABI)
		}

		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
