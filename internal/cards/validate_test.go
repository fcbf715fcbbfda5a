package cards

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() FormData {
	return FormData{
		Title:   "Robo Rita",
		Tagline: "Builder of things that roll",
		FunFact: "You can get four in a row",
		ProTip:  "Check the battery first",
	}
}

func TestValidateFormAccepts(t *testing.T) {
	assert.NoError(t, ValidateForm(validForm(), DefaultLimits, nil))
}

func TestValidateFormRequiresTitle(t *testing.T) {
	f := validForm()
	f.Title = "   "
	err := ValidateForm(f, DefaultLimits, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
}

func TestValidateFormLimits(t *testing.T) {
	f := validForm()
	f.Tagline = strings.Repeat("a", 61)
	f.ProTip = strings.Repeat("é", 120) // runes, not bytes
	err := ValidateForm(f, DefaultLimits, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"tagline": "Tagline is too long (61/60 characters)."}, verr.Fields)
	assert.Contains(t, err.Error(), "tagline")
}

func TestValidateFormBlockedWords(t *testing.T) {
	f := validForm()
	f.FunFact = "I said DARN it"
	err := ValidateForm(f, DefaultLimits, NewWordList("darn"))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "funFact")
}

func TestWordListMatching(t *testing.T) {
	wl := NewWordList("heck", " Darn ", "")
	assert.Equal(t, 2, wl.Len())
	assert.True(t, wl.Contains("what the h3ck"))
	assert.True(t, wl.Contains("d@rn!"))
	assert.True(t, wl.Contains("Heck, yes"))
	assert.False(t, wl.Contains("checkers"))
	assert.False(t, wl.Contains(""))

	var empty *WordList
	assert.False(t, empty.Contains("heck"))
}

func TestLoadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocked.csv")
	data := "# blocked words\nheck,mild\n\ndarn\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	wl, err := LoadWordList(path)
	require.NoError(t, err)
	assert.Equal(t, 2, wl.Len())
	assert.True(t, wl.Contains("darn"))

	_, err = LoadWordList(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
