package architecture_test

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const projectImportPath = "github.com/iconplus/catalog"

func TestArchitecturalRules(t *testing.T) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		t.Fatal("Failed to find project root:", err)
	}

	err = filepath.Walk(projectRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && path != projectRoot {
			name := info.Name()
			if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata" {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".go") ||
			strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			fmt.Printf("Failed to parse %s: %v\n", path, err)
			return nil
		}

		relPath, err := filepath.Rel(projectRoot, path)
		if err != nil {
			fmt.Printf("Failed to get relative path for %s: %v\n", path, err)
			return nil
		}
		relPath = "/" + strings.ReplaceAll(relPath, "\\", "/")

		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, "\"")

			if isViolation(relPath, importPath) {
				position := fset.Position(imp.Pos())
				t.Errorf("ARCHITECTURE VIOLATION at %v: %s imports %s", position, relPath, importPath)
			}
		}

		return nil
	})

	if err != nil {
		t.Fatal("Failed to walk through project files:", err)
	}
}

func TestIsViolation(t *testing.T) {
	tests := []struct {
		file      string
		importing string
		want      bool
	}{
		{"/internal/core/domain/product.go", "/internal/core/dto", true},
		{"/internal/core/domain/product.go", "github.com/shopspring/decimal", false},
		{"/internal/core/port/product.go", "/internal/core/domain", false},
		{"/internal/core/port/product.go", "/internal/core/service", true},
		{"/internal/core/service/catalog.go", "/internal/adapters/mysql", true},
		{"/internal/core/service/catalog.go", "/internal/core/logger", false},
		{"/internal/adapters/http/router.go", "/internal/adapters/metrics", false},
		{"/internal/adapters/http/router.go", "/internal/adapters/mysql", true},
		{"/internal/adapters/echoapi/server.go", "/internal/adapters/http/handlers", true},
		{"/internal/adapters/echoapi/server.go", "/internal/adapters/config", false},
		{"/internal/adapters/echoapi/middleware.go", "/internal/adapters/telemetry", false},
		{"/internal/adapters/http/middleware/trace.go", "/internal/adapters/telemetry", false},
		{"/internal/client/client.go", "/internal/adapters/http", true},
		{"/internal/client/client.go", "/internal/core/dto", false},
	}

	for _, tt := range tests {
		importPath := tt.importing
		if strings.HasPrefix(importPath, "/") {
			importPath = projectImportPath + importPath
		}
		if got := isViolation(tt.file, importPath); got != tt.want {
			t.Errorf("isViolation(%s, %s) = %v, want %v", tt.file, importPath, got, tt.want)
		}
	}
}

func isViolation(filePath, importPath string) bool {
	if !strings.Contains(importPath, projectImportPath) {
		return false
	}

	internalImportPath := strings.TrimPrefix(importPath, projectImportPath)
	if !strings.HasPrefix(internalImportPath, "/") {
		internalImportPath = "/" + internalImportPath
	}

	// core/domain can only import third parties libs or golang libs
	if strings.Contains(filePath, "/core/domain") {
		return !strings.Contains(internalImportPath, "/core/domain")
	}

	// core/port can only import domain
	if strings.Contains(filePath, "/core/port") {
		return !strings.Contains(internalImportPath, "/core/domain") && !strings.Contains(internalImportPath, "/core/port")
	}

	//  core/* can only import from inside core
	if strings.Contains(filePath, "/core") &&
		!strings.Contains(filePath, "/core/domain") &&
		!strings.Contains(filePath, "/core/port") {

		return !strings.Contains(internalImportPath, "/core")
	}

	// the client only speaks the wire format
	if strings.Contains(filePath, "/internal/client") {
		return !strings.Contains(internalImportPath, "/core/dto") && !strings.Contains(internalImportPath, "/internal/client")
	}

	//  inbound adapters cannot import other adapters packages outside of adapters/config, adapters/metrics and adapters/telemetry
	prefixArr := []string{"/adapters/http", "/adapters/echoapi"}
	for _, prefix := range prefixArr {
		if strings.Contains(filePath, prefix) {
			if strings.Contains(internalImportPath, "/adapters") {
				return !strings.Contains(internalImportPath, "/adapters/config") &&
					!strings.Contains(internalImportPath, "/adapters/metrics") &&
					!strings.Contains(internalImportPath, "/adapters/telemetry") &&
					!strings.Contains(internalImportPath, prefix)
			}
		}
	}

	return false
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	currentDir, _ := os.Getwd()
	return currentDir, nil
}
