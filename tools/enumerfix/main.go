// Command enumerfix rewrites enumer output to build its errors with
// cockroachdb/errors. It runs after enumer in the same go:generate block:
//
//	//go:generate enumer -type=Kind -output=kind_enumer.go
//	//go:generate go run github.com/smykla-skalski/mariabridge/tools/enumerfix kind_enumer.go
package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

const filePerm = 0o644

const errorsImport = `"github.com/cockroachdb/errors"`

// ErrUsage is returned when no file is named.
var ErrUsage = errors.New("usage: enumerfix FILE...")

var (
	importBlock  = regexp.MustCompile(`(?s)import \((.*?)\n\)`)
	singleImport = regexp.MustCompile(`import ("[^"]+")\n`)
	packageLine  = regexp.MustCompile(`(?m)^package \w+\n`)
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "enumerfix: %v\n", err)
		os.Exit(1)
	}
}

func run(files []string) error {
	if len(files) == 0 {
		return ErrUsage
	}

	for _, name := range files {
		//nolint:gosec // G304: generated file named on the command line
		content, err := os.ReadFile(name)
		if err != nil {
			return errors.Wrapf(err, "reading %s", name)
		}

		fixed := fix(content)
		if string(fixed) == string(content) {
			continue
		}

		if err := os.WriteFile(name, fixed, filePerm); err != nil {
			return errors.Wrapf(err, "writing %s", name)
		}
	}

	return nil
}

// fix replaces fmt.Errorf with errors.Newf and imports the errors package.
// fmt is dropped when nothing else uses it. Fixed files are left as they
// are.
func fix(content []byte) []byte {
	src := string(content)
	if !strings.Contains(src, "fmt.Errorf") {
		return content
	}

	src = strings.ReplaceAll(src, "fmt.Errorf", "errors.Newf")

	if !strings.Contains(src, "fmt.") {
		if strings.Contains(src, "import \"fmt\"\n") {
			return []byte(strings.Replace(src, "import \"fmt\"\n", "import "+errorsImport+"\n", 1))
		}

		src = strings.Replace(src, "\t\"fmt\"\n", "", 1)
	}

	return []byte(addImport(src))
}

// addImport puts the errors package in its own group at the end of the
// import block, creating the block when the file has none.
func addImport(src string) string {
	if strings.Contains(src, errorsImport) {
		return src
	}

	if m := importBlock.FindStringSubmatchIndex(src); m != nil {
		body := strings.TrimSpace(src[m[2]:m[3]])
		if body == "" {
			return src[:m[0]] + "import " + errorsImport + src[m[1]:]
		}

		return src[:m[0]] + "import (\n\t" + body + "\n\n\t" + errorsImport + "\n)" + src[m[1]:]
	}

	if singleImport.MatchString(src) {
		return singleImport.ReplaceAllString(src, "import (\n\t$1\n\n\t"+errorsImport+"\n)\n")
	}

	loc := packageLine.FindStringIndex(src)
	if loc == nil {
		return src
	}

	return src[:loc[1]] + "\nimport " + errorsImport + "\n" + src[loc[1]:]
}
