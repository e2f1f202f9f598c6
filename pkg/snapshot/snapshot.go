// Package snapshot compares values against golden JSON files kept in testdata
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
	"pokercore/internal/util"
)

// UpdateEnv rewrites every golden file instead of comparing when set to "1"
const UpdateEnv = "PCORE_UPDATE_SNAPSHOTS"

var (
	mu        sync.Mutex
	callCount = make(map[string]int)
)

// filename returns testdata/<test name>-<call>.json, the call counts from 0 within a test
func filename(t testing.TB) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	mu.Lock()
	call := callCount[name]
	callCount[name] = call + 1
	mu.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))
}

// ValidateSnapshot compares obj encoded as indented JSON with its golden file
// A missing golden file is written and the comparison passes
func ValidateSnapshot(t testing.TB, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	file := filename(t)
	actual, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	expects, err := os.ReadFile(file)
	switch {
	case err == nil && util.Getenv(UpdateEnv, "") != "1":
	case err == nil || os.IsNotExist(err):
		write(t, file, actual)
		return
	default:
		t.Fatalf("could not read snapshot %s: %v", file, err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(actual), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s, run with %s=1 to update", file, UpdateEnv)
	}
}

func write(t testing.TB, file string, b []byte) {
	t.Helper()

	logrus.WithField("filename", file).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		t.Fatalf("could not create snapshot directory: %v", err)
	}

	if err := os.WriteFile(file, append(b, '\n'), 0644); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
}
