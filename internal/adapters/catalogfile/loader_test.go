package catalogfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/deckforge/internal/ports/primary"
)

func TestReadCSV(t *testing.T) {
	in := "Name,ID,Type,Image_URL\n" +
		"Stone Guard, P1 ,Protector,https://img/p1.png\n" +
		",,\n" +
		"\"Spark, the First\",R1,Rot\n"

	cards, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	want := []*primary.Card{
		{ID: "P1", Name: "Stone Guard", Type: "Protector", ImageURL: "https://img/p1.png"},
		{ID: "R1", Name: "Spark, the First", Type: "Rot"},
	}
	if diff := cmp.Diff(want, cards); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,name\nP1,Stone Guard\n"))
	assert.ErrorContains(t, err, `missing column "type"`)
}

func TestReadYAML(t *testing.T) {
	in := `
cards:
  - id: X1
    name: Glifo Solar
    type: Ixim
    text: Draw a card.
  - id: M1
    name: Zorro de Ceniza
    type: Adendei
`
	cards, err := ReadYAML(strings.NewReader(in))
	require.NoError(t, err)

	want := []*primary.Card{
		{ID: "X1", Name: "Glifo Solar", Type: "Ixim", Text: "Draw a card."},
		{ID: "M1", Name: "Zorro de Ceniza", Type: "Adendei"},
	}
	if diff := cmp.Diff(want, cards); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "cards.CSV")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,name,type\nP1,Stone Guard,Protector\n"), 0644))
	cards, err := Load(csvPath)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	ymlPath := filepath.Join(dir, "cards.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte("cards:\n  - {id: R1, name: Spark, type: Rot}\n"), 0644))
	cards, err = Load(ymlPath)
	require.NoError(t, err)
	assert.Equal(t, "Spark", cards[0].Name)

	_, err = Load(filepath.Join(dir, "cards.json"))
	assert.Error(t, err)

	txtPath := filepath.Join(dir, "cards.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0644))
	_, err = Load(txtPath)
	assert.ErrorContains(t, err, "unsupported catalog format")
}
