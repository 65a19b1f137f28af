package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var fileIndexRe = regexp.MustCompile(`\d+`)

// conversationFiles lists the .json files of one conversation directory,
// sorted ascending by the numeric index embedded in each filename
// (message_1.json, message_2.json, ...). The index ordering is a validated
// precondition: a JSON file without an embedded integer is an error rather
// than an arbitrary position in the merge.
func conversationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read conversation dir: %w", err)
	}

	type indexed struct {
		path string
		idx  int
	}
	var files []indexed
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		m := fileIndexRe.FindString(e.Name())
		if m == "" {
			return nil, fmt.Errorf("conversation file %q has no numeric index", e.Name())
		}
		idx, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("conversation file %q: bad index: %w", e.Name(), err)
		}
		files = append(files, indexed{path: filepath.Join(dir, e.Name()), idx: idx})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].idx < files[j].idx })

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

// conversationDirs lists the sub-directories of an archive root in stable
// sorted order, one per conversation.
func conversationDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read archive root: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
