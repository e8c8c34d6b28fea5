//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every recordings/*.json into tracks/.
func Convert() error {
	mg.Deps(Init, Build)

	inputs, err := filepath.Glob(filepath.Join("recordings", "*.json"))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Println("[convert] No recordings found in recordings/.")
		return nil
	}

	args := append([]string{"convert", "--out-dir", "tracks"}, inputs...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
