package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/scout/core/config"
)

func TestResolve(t *testing.T) {
	r := New("/repo", config.AliasTable{
		{Prefix: "@/", Target: "src/"},
		{Prefix: "~lib", Target: "/repo/src/lib"},
	}, nil)

	tests := []struct {
		name     string
		spec     string
		from     string
		want     string
		external bool
	}{
		{"relative with extension and index file", "./Button.jsx", "src/components/index.js", "src/components/Button", false},
		{"parent directory", "../utils/format.ts", "src/components/Button.tsx", "src/utils/format", false},
		{"trailing index stripped", "./forms/index", "src/components/App.tsx", "src/components/forms", false},
		{"directory import", "./forms", "src/components/App.tsx", "src/components/forms", false},
		{"absolute importing file", "./Card", "/repo/src/ui/List.tsx", "src/ui/Card", false},
		{"unknown extension kept", "./theme.css", "src/App.tsx", "src/theme.css", false},
		{"alias", "@/hooks/useThing", "src/App.tsx", "src/hooks/useThing", false},
		{"alias case insensitive", "~LIB/date", "src/App.tsx", "src/lib/date", false},
		{"alias with index", "@/Hooks/index.ts", "src/App.tsx", "src/Hooks", false},
		{"absolute alias target", "~lib/date", "src/App.tsx", "src/lib/date", false},
		{"absolute specifier under root", "/repo/src/App.tsx", "src/index.ts", "src/App", false},
		{"root index", "./index", "main.ts", ".", false},
		{"bare package", "@mui/material/Button", "src/App.tsx", "@mui/material/Button", true},
		{"bare package unchanged", "react", "src/App.tsx", "react", true},
		{"backslashes normalized", `.\Button`, "src/App.tsx", "src/Button", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.spec, tt.from)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ID)
			assert.Equal(t, tt.external, got.External)
		})
	}
}

func TestResolveFirstDeclaredAliasWins(t *testing.T) {
	// Overlapping aliases resolve by declaration order, not specificity.
	r := New("/repo", config.AliasTable{
		{Prefix: "@/", Target: "src/"},
		{Prefix: "@/components/", Target: "packages/ui/"},
	}, nil)

	got, err := r.Resolve("@/components/Button", "src/App.tsx")
	require.NoError(t, err)
	assert.Equal(t, "src/components/Button", got.ID)
}

func TestResolveErrors(t *testing.T) {
	r := New("/repo", config.AliasTable{{Prefix: "@up", Target: "../outside"}}, nil)

	tests := []struct {
		name string
		spec string
		from string
	}{
		{"empty", "   ", "src/App.tsx"},
		{"escapes root", "../../x", "src/App.tsx"},
		{"alias escapes root", "@up/thing", "src/App.tsx"},
		{"absolute outside root", "/etc/passwd", "src/App.tsx"},
		{"control characters", "./a\nb", "src/App.tsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.spec, tt.from)
			require.Error(t, err)
			var resErr *ResolutionError
			require.True(t, errors.As(err, &resErr))
			assert.Equal(t, tt.from, resErr.File)
			assert.Contains(t, err.Error(), tt.from)
		})
	}
}

func TestResolveIsPure(t *testing.T) {
	r := New("/repo", nil, nil)
	first, err := r.Resolve("./a/b.js", "src/x.js")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve("./a/b.js", "src/x.js")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestModuleID(t *testing.T) {
	r := New("/repo", nil, []string{"js", ".tsx"})

	assert.Equal(t, "src/components", r.ModuleID("/repo/src/components/index.js"))
	assert.Equal(t, "src/Button", r.ModuleID("src/Button.tsx"))
	assert.Equal(t, "src/Button.ts", r.ModuleID("src/Button.ts"))
	assert.Equal(t, ".", r.ModuleID("index.js"))
}
