package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/pders01/wayback-context/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// setupCommand points the commands at endpoint and captures diagnostics
func setupCommand(t *testing.T, endpoint string) *bytes.Buffer {
	t.Helper()

	viper.Reset()
	config.SetDefaults(viper.GetViper())
	viper.Set("cdx.endpoint", endpoint)

	var logs bytes.Buffer
	oldFs, oldOutput := docFs, logOutput
	docFs = afero.NewOsFs()
	logOutput = &logs

	t.Cleanup(func() {
		docFs, logOutput = oldFs, oldOutput
		viper.Reset()
	})

	return &logs
}

// captureStdout returns everything fn prints to stdout
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()

	fn()

	w.Close()
	return <-done
}
