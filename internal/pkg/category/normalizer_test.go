package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMappedLabels(t *testing.T) {
	tests := []struct {
		raw  string
		name string
	}{
		{"AI", "Machine Learning"},
		{"ml", "Machine Learning"},
		{"Deep Learning", "Machine Learning"},
		{"Machine Learning", "Machine Learning"},
		{"Security", "Security"},
		{"iOS", "iOS"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			res, ok := Normalize(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.name, res.Name)
			assert.Equal(t, Slugify(tt.name), res.Slug)
		})
	}
}

func TestNormalizeShortMappedLabels(t *testing.T) {
	// Two-character labels resolve through the mapping table; only unmapped
	// ones are dropped as noise.
	tests := []struct {
		raw  string
		name string
	}{
		{"AI", "Machine Learning"},
		{"ml", "Machine Learning"},
		{"db", "Databases"},
		{"go", "Go"},
		{"js", "JavaScript"},
		{"ts", "TypeScript"},
		{"mq", "Messaging"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			res, ok := Normalize(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.name, res.Name)
		})
	}

	_, ok := Normalize("zz")
	assert.False(t, ok)
}

func TestNormalizeEquivalentLabelsShareSlug(t *testing.T) {
	utils, ok := Normalize("Utils")
	require.True(t, ok)
	utilities, ok := Normalize("Utilities")
	require.True(t, ok)

	assert.Equal(t, "Utilities", utils.Name)
	assert.Equal(t, "Utilities", utilities.Name)
	assert.Equal(t, utils.Slug, utilities.Slug)
}

func TestNormalizeSkips(t *testing.T) {
	for _, raw := range []string{
		"Resources",
		"See Also",
		"CS", // two characters
		"What is Docker?",
		"Contents",
		"License",
		"",
		"  ",
	} {
		t.Run(raw, func(t *testing.T) {
			_, ok := Normalize(raw)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeCleansDecorations(t *testing.T) {
	res, ok := Normalize("  🚀 Deployment ")
	require.True(t, ok)
	assert.Equal(t, "Deployment", res.Name)

	res, ok = Normalize("for Android")
	require.True(t, ok)
	assert.Equal(t, "Android", res.Name)

	res, ok = Normalize("Security (tools)")
	require.True(t, ok)
	assert.Equal(t, "Security", res.Name)
}

func TestNormalizeStructuralFallbacks(t *testing.T) {
	tests := []struct {
		raw  string
		name string
	}{
		{"Deployment tools for Kubernetes", "Deployment"},
		{"Document Management - E-books", "Document Management"},
		{"Software Development - Project Management", "Developer Tools"},
		{"Security Tools", "Security"},
		{"Machine Learning Libraries", "Machine Learning"},
		{"Security and Privacy", "Security"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			res, ok := Normalize(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.name, res.Name)
		})
	}
}

func TestNormalizeGenericTitleize(t *testing.T) {
	tests := []struct {
		raw  string
		name string
	}{
		{"static site generator", "Static Site Generators"},
		{"api gateway", "API Gateways"},
		{"proxy", "Proxies"},
		{"security scanning", "Security Scanning"},
		{"deployment environment", "Deployment Environment"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			res, ok := Normalize(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.name, res.Name)
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Gateway", "Gateways"},
		{"Proxy", "Proxies"},
		{"Box", "Boxes"},
		{"Class", "Classes"},
		{"Bench", "Benches"},
		{"Monitoring", "Monitoring"},
		{"Deployment", "Deployment"},
		{"Tools", "Tools"},
		{"Security", "Security"}, // mass noun
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, pluralize(tt.in), tt.in)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Machine Learning", "machine-learning"},
		{"CI & CD", "ci-and-cd"},
		{"Audio/Video", "audio-video"},
		{"  Static   Site  Generators ", "static-site-generators"},
		{"C++ Libraries", "c-libraries"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, Slugify(tt.in), tt.in)
	}
}
