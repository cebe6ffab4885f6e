package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv is the environment variable that rewrites every golden file when set
const UpdateEnv = "UPDATE_SNAPSHOTS"

var (
	mu        sync.Mutex
	callCount = make(map[string]int)
)

// ValidateSnapshot compares the JSON form of obj with a golden file under testdata/
// The file is named after the test and how many snapshots it has taken so far. A missing
// golden file is written and the check passes.
func ValidateSnapshot(t *testing.T, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	filename := nextFilename(t.Name())

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	expects, err := os.ReadFile(filename)
	if err != nil || os.Getenv(UpdateEnv) != "" {
		if err != nil && !os.IsNotExist(err) {
			t.Fatalf("could not read snapshot %s: %v", filename, err)
		}

		if err := create(filename, objJSON); err != nil {
			t.Fatalf("could not write snapshot %s: %v", filename, err)
		}

		return
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func nextFilename(testName string) string {
	mu.Lock()
	defer mu.Unlock()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(testName)
	call := callCount[name]
	callCount[name] = call + 1

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))
}

func create(filename string, objJSON []byte) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(objJSON, '\n'), 0644)
}
