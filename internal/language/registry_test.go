package language

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

func TestNewRegistry_AllLanguagesWired(t *testing.T) {
	reg := NewRegistry(nil, zap.NewNop())

	for _, lang := range []domain.Language{
		domain.LangC, domain.LangPython, domain.LangJava, domain.LangRust, domain.LangGo,
	} {
		if reg.Get(lang) == nil {
			t.Errorf("expected an adapter for %s, got nil", lang)
		}
	}
}

func TestRegistry_Get_UnknownLanguage(t *testing.T) {
	reg := NewRegistry(nil, zap.NewNop())
	if reg.Get(domain.Language("cobol")) != nil {
		t.Error("expected nil adapter for an unsupported language")
	}
}

func TestWriteSource_FileNames(t *testing.T) {
	reg := NewRegistry(nil, zap.NewNop())

	cases := []struct {
		lang domain.Language
		want string
	}{
		{domain.LangC, "solution.c"},
		{domain.LangPython, "solution.py"},
		{domain.LangJava, "Solution.java"},
		{domain.LangRust, "main.rs"},
		{domain.LangGo, "main.go"},
	}

	for _, tc := range cases {
		t.Run(string(tc.lang), func(t *testing.T) {
			dir := t.TempDir()
			path, err := reg.Get(tc.lang).WriteSource("// body", dir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := path[len(dir)+1:]; got != tc.want {
				t.Errorf("expected source name %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWriteSource_StripsBOM(t *testing.T) {
	reg := NewRegistry(nil, zap.NewNop())
	dir := t.TempDir()

	src := utf8BOM + "fn main() {}"
	path, err := reg.Get(domain.LangRust).WriteSource(src, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error reading back source: %v", err)
	}
	if string(data) != "fn main() {}" {
		t.Errorf("expected BOM stripped, got %q", string(data))
	}
}
