package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// StarterScript is written by CreateStarter.
const StarterScript = `print "Hello, World"
new var name = "Potato"
print to terminal name

func greet
    print to terminal "Hi from a function"
endfunc
call greet

loop do
    print to terminal "looping once"
    if true
        quit_loop
    }
quit_loop
`

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// CreateStarter writes StarterScript to path, creating parent directories.
// It refuses to overwrite an existing file.
func CreateStarter(path string) (string, error) {
	fullPath, parentDir, err := GetPathInfo(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(parentDir, 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%s already exists", fullPath)
		}
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(StarterScript); err != nil {
		return "", err
	}
	return fullPath, nil
}
