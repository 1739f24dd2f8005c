// Package assets embeds the static page and SQL migrations into the binary.
package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed index.html sql/*.sql
var FS embed.FS

// IndexHTML returns the single presentation page.
func IndexHTML() ([]byte, error) {
	return FS.ReadFile("index.html")
}

// Migrations lists embedded *.sql files in lexical (apply) order.
func Migrations() ([]string, error) {
	var files []string
	err := fs.WalkDir(FS, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}
