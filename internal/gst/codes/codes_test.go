package codes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lekha/internal/domain"
	"lekha/internal/gst/codes"
)

func TestValidateHSN(t *testing.T) {
	t.Run("valid_lengths", func(t *testing.T) {
		assert.True(t, codes.ValidateHSN("8471"))
		assert.True(t, codes.ValidateHSN("847141"))
		assert.True(t, codes.ValidateHSN("84714100"))
	})

	t.Run("trims_surrounding_whitespace", func(t *testing.T) {
		assert.True(t, codes.ValidateHSN("  8471  "))
	})

	t.Run("rejects_odd_lengths", func(t *testing.T) {
		assert.False(t, codes.ValidateHSN("84714"))
		assert.False(t, codes.ValidateHSN("8471410"))
	})

	t.Run("rejects_non_numeric", func(t *testing.T) {
		assert.False(t, codes.ValidateHSN("84A1"))
		assert.False(t, codes.ValidateHSN(""))
	})

	t.Run("does_not_normalize_separators", func(t *testing.T) {
		// "8471.41" would be valid after normalization, but the
		// validator checks the original string.
		assert.False(t, codes.ValidateHSN("8471.41"))
		assert.False(t, codes.ValidateHSN("8471-41"))
	})
}

func TestValidateSAC(t *testing.T) {
	t.Run("valid_lengths", func(t *testing.T) {
		assert.True(t, codes.ValidateSAC("9983"))
		assert.True(t, codes.ValidateSAC("998319"))
	})

	t.Run("rejects_eight_digits", func(t *testing.T) {
		assert.False(t, codes.ValidateSAC("99831900"))
	})

	t.Run("rejects_non_numeric", func(t *testing.T) {
		assert.False(t, codes.ValidateSAC("99X3"))
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "998319", codes.Normalize(" 9983-19 "))
	assert.Equal(t, "847141", codes.Normalize("8471.41"))
	assert.Equal(t, "ABC", codes.Normalize("abc"))
	assert.Equal(t, "", codes.Normalize("   "))
}

func TestClassify(t *testing.T) {
	t.Run("services_start_at_99", func(t *testing.T) {
		assert.Equal(t, domain.CodeTypeSAC, codes.Classify("9983"))
		assert.Equal(t, domain.CodeTypeSAC, codes.Classify("998319"))
	})

	t.Run("goods_below_99", func(t *testing.T) {
		assert.Equal(t, domain.CodeTypeHSN, codes.Classify("8471"))
		assert.Equal(t, domain.CodeTypeHSN, codes.Classify("100630"))
	})

	t.Run("eight_digits_always_hsn", func(t *testing.T) {
		assert.Equal(t, domain.CodeTypeHSN, codes.Classify("99831900"))
	})

	t.Run("invalid", func(t *testing.T) {
		assert.Equal(t, domain.CodeTypeInvalid, codes.Classify("99"))
		assert.Equal(t, domain.CodeTypeInvalid, codes.Classify("998319001"))
		assert.Equal(t, domain.CodeTypeInvalid, codes.Classify("84B1"))
		assert.Equal(t, domain.CodeTypeInvalid, codes.Classify(""))
	})

	t.Run("rejects_odd_lengths", func(t *testing.T) {
		// 5- and 7-digit strings sit inside the 4..8 range but identify
		// no real heading.
		assert.Equal(t, domain.CodeTypeInvalid, codes.Classify("84714"))
		assert.Equal(t, domain.CodeTypeInvalid, codes.Classify("9983190"))
		assert.Equal(t, domain.CodeTypeInvalid, codes.Classify("1006301"))
	})
}

func TestMatchPattern(t *testing.T) {
	t.Run("exact_normalized_match_wins", func(t *testing.T) {
		got, ok := codes.MatchPattern("9983-19", []string{"8471", "998319"})
		assert.True(t, ok)
		assert.Equal(t, "998319", got)
	})

	t.Run("prefix_containment_returns_shorter", func(t *testing.T) {
		got, ok := codes.MatchPattern("99831900", []string{"9983"})
		assert.True(t, ok)
		assert.Equal(t, "9983", got)

		got, ok = codes.MatchPattern("9983", []string{"99831900"})
		assert.True(t, ok)
		assert.Equal(t, "9983", got)
	})

	t.Run("no_match", func(t *testing.T) {
		_, ok := codes.MatchPattern("8471", []string{"9983", "1006"})
		assert.False(t, ok)
	})

	t.Run("empty_code", func(t *testing.T) {
		_, ok := codes.MatchPattern("", []string{"9983"})
		assert.False(t, ok)
	})
}
