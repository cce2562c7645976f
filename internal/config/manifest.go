package config

import (
	"os"
	"slices"
	"sort"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/smykla-skalski/mariabridge/pkg/plugin"
	"github.com/smykla-skalski/mariabridge/pkg/sysvar"
)

// ErrInvalidManifest marks manifests that parse but do not describe valid
// plugins.
var ErrInvalidManifest = errors.New("invalid plugin manifest")

// Manifest is a parsed mariadb-plugin.toml.
type Manifest struct {
	Path    string
	Plugins []*ManifestEntry
}

// ManifestEntry is one declaration with its keys in file order.
type ManifestEntry struct {
	Declaration *plugin.Declaration
	Order       []string
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	if err := checkPermissions(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s", path)
		}

		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	m.Path = path

	return m, nil
}

// ParseManifest parses and validates manifest text.
func ParseManifest(data []byte) (*Manifest, error) {
	tables, err := scanOrder(data)
	if err != nil {
		if errors.Is(err, ErrInvalidManifest) {
			return nil, err
		}

		return nil, errors.Mark(err, ErrInvalidTOML)
	}

	k := koanf.New(".")
	if err := k.Load(bytesProvider(data), tomlparser.Parser()); err != nil {
		return nil, errors.Mark(err, ErrInvalidTOML)
	}

	if len(tables) == 0 {
		return nil, errors.Wrap(ErrInvalidManifest, "no plugin tables")
	}

	m := &Manifest{}

	for _, t := range tables {
		entry, err := decodeEntry(k, t)
		if err != nil {
			return nil, errors.Wrapf(errors.Mark(err, ErrInvalidManifest), "plugin table '%s'", t.name)
		}

		m.Plugins = append(m.Plugins, entry)
	}

	return m, nil
}

func decodeEntry(k *koanf.Koanf, t tableOrder) (*ManifestEntry, error) {
	sub := k.Cut(t.name)

	if err := checkVariableKeys(sub.Get(plugin.FieldVariables)); err != nil {
		return nil, err
	}

	var decl plugin.Declaration
	if err := sub.UnmarshalWithConf("", &decl, unmarshalConf(&decl)); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal")
	}

	decl.Main = t.name

	if err := plugin.Validate(&decl, t.keys); err != nil {
		return nil, err
	}

	return &ManifestEntry{Declaration: &decl, Order: t.keys}, nil
}

// checkVariableKeys rejects unknown keys in the variable tables.
func checkVariableKeys(raw any) error {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	for i, item := range list {
		tbl, ok := item.(map[string]any)
		if !ok {
			return errors.Wrapf(sysvar.ErrInvalid, "sysvar %d is not a table", i)
		}

		keys := make([]string, 0, len(tbl))
		for key := range tbl {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		name, _ := tbl["name"].(string)
		if err := sysvar.CheckKeys(name, keys); err != nil {
			return err
		}
	}

	return nil
}

type tableOrder struct {
	name string
	keys []string
}

// scanOrder lists the top-level tables and the keys directly under each, in
// file order. koanf flattens into maps and loses it.
func scanOrder(data []byte) ([]tableOrder, error) {
	var (
		p       unstable.Parser
		tables  []tableOrder
		current = -1
		// inSub is set under headers such as [[Main.variables]], whose keys
		// belong to the nested table.
		inSub bool
	)

	p.Reset(data)

	index := func(name string) int {
		for i, t := range tables {
			if t.name == name {
				return i
			}
		}

		tables = append(tables, tableOrder{name: name})

		return len(tables) - 1
	}

	addKey := func(i int, key string) {
		if !slices.Contains(tables[i].keys, key) {
			tables[i].keys = append(tables[i].keys, key)
		}
	}

	for p.NextExpression() {
		e := p.Expression()

		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			parts := keyParts(e.Key())
			current = index(parts[0])
			inSub = len(parts) > 1

			if inSub {
				addKey(current, parts[1])
			}
		case unstable.KeyValue:
			parts := keyParts(e.Key())

			if current < 0 {
				return nil, errors.Wrapf(ErrInvalidManifest, "key '%s' is outside a plugin table", parts[0])
			}

			if !inSub {
				addKey(current, parts[0])
			}
		}
	}

	if err := p.Error(); err != nil {
		return nil, err
	}

	return tables, nil
}

func keyParts(it unstable.Iterator) []string {
	var parts []string

	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}

	return parts
}

// bytesProvider serves manifest text to koanf.
type bytesProvider []byte

// ReadBytes implements koanf.Provider.
func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

// Read implements koanf.Provider.
func (bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("bytes provider does not support Read()")
}
