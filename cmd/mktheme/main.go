// Command mktheme packs a theme directory into the zip layout the renderer
// loads: the description file plus images/ and fonts/.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"recoveryui/gui/theme"

	"github.com/klauspost/compress/zip"
)

const (
	defaultOutPath   = "ui.zip"
	defaultThemeFile = "ui.xml"
)

// storedExts are already compressed and go into the archive as is.
var storedExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

func main() {
	var srcDir string
	var outPath string
	var themeFile string
	flag.StringVar(&srcDir, "src", "", "Theme directory to pack.")
	flag.StringVar(&outPath, "out", defaultOutPath, "Output zip path.")
	flag.StringVar(&themeFile, "theme", defaultThemeFile, "Theme description file inside -src.")
	flag.Parse()

	if srcDir == "" {
		fmt.Fprintln(os.Stderr, "error: -src is required")
		os.Exit(2)
	}
	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}

	n, err := run(srcDir, outPath, themeFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("packed %d files into %s\n", n, outPath)
}

func run(srcDir, outPath, themeFile string) (int, error) {
	srcDir = filepath.Clean(srcDir)
	st, err := os.Stat(srcDir)
	if err != nil {
		return 0, fmt.Errorf("stat src %q: %w", srcDir, err)
	}
	if !st.IsDir() {
		return 0, fmt.Errorf("src %q is not a directory", srcDir)
	}

	doc, err := theme.ParseFile(filepath.Join(srcDir, themeFile))
	if err != nil {
		return 0, fmt.Errorf("theme %q: %w", themeFile, err)
	}
	if doc.Root().Child("pages") == nil {
		return 0, fmt.Errorf("theme %q: no <pages>", themeFile)
	}

	var files []string
	walkErr := filepath.WalkDir(srcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		return 0, fmt.Errorf("walk src %q: %w", srcDir, walkErr)
	}
	sort.Strings(files)

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create %q: %w", outPath, err)
	}
	zw := zip.NewWriter(out)
	for _, name := range files {
		if err := addFile(zw, filepath.Join(srcDir, filepath.FromSlash(name)), name); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return 0, err
		}
	}
	if err := errors.Join(zw.Close(), out.Close()); err != nil {
		return 0, fmt.Errorf("finish %q: %w", outPath, err)
	}
	return len(files), nil
}

func addFile(zw *zip.Writer, hostPath, name string) error {
	in, err := os.Open(hostPath)
	if err != nil {
		return fmt.Errorf("open %q: %w", hostPath, err)
	}
	defer func() { _ = in.Close() }()

	method := zip.Deflate
	if storedExts[strings.ToLower(filepath.Ext(name))] {
		method = zip.Store
	}
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: time.Unix(0, 0).UTC(),
	})
	if err != nil {
		return fmt.Errorf("add %q: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	return nil
}
