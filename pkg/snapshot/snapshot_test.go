package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSnapshot(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	wd, err := os.Getwd()
	a.NoError(err)
	a.NoError(os.Chdir(dir))
	defer func() {
		_ = os.Chdir(wd)
	}()

	obj := map[string]int{"pot": 150}

	// the first run writes the golden file
	ValidateSnapshot(t, obj)
	b, err := os.ReadFile(filepath.Join("testdata", "TestValidateSnapshot-0.json"))
	a.NoError(err)
	a.JSONEq(`{"pot":150}`, string(b))

	a.Equal(filepath.Join("testdata", "TestValidateSnapshot-1.json"), nextFilename(t.Name()))
	a.Equal(filepath.Join("testdata", "a_b-0.json"), nextFilename("a/b"))
}
