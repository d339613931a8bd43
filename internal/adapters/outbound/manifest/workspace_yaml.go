package manifest

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// removeYAMLEntries drops entries from the packages list of a workspace
// document. Block sequences lose exactly the matching lines; any other
// layout is re-encoded with the detected indentation.
func removeYAMLEntries(path string, entries []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	seq := packagesSequence(&root)
	if seq == nil {
		return fmt.Errorf("%s has no packages list", path)
	}

	var dropped, kept []*yaml.Node
	for _, item := range seq.Content {
		if item.Kind == yaml.ScalarNode && slices.Contains(entries, item.Value) {
			dropped = append(dropped, item)
		} else {
			kept = append(kept, item)
		}
	}
	if len(dropped) == 0 {
		return nil
	}

	lines := splitLines(data)
	if seq.Style&yaml.FlowStyle == 0 && ownLines(seq, dropped, len(lines)) {
		drop := make(map[int]bool, len(dropped))
		for _, item := range dropped {
			drop[item.Line-1] = true
		}
		var out bytes.Buffer
		for i, line := range lines {
			if !drop[i] {
				out.Write(line)
			}
		}
		return writeFile(path, out.Bytes())
	}

	seq.Content = kept
	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(detectYAMLIndent(lines))
	if err := enc.Encode(&root); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return writeFile(path, out.Bytes())
}

// packagesSequence returns the value node of the top-level packages key.
func packagesSequence(root *yaml.Node) *yaml.Node {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == "packages" && mapping.Content[i+1].Kind == yaml.SequenceNode {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// ownLines reports whether every dropped item sits alone on its line.
func ownLines(seq *yaml.Node, dropped []*yaml.Node, total int) bool {
	for _, d := range dropped {
		if d.Line < 1 || d.Line > total || d.Line == seq.Line {
			return false
		}
		for _, other := range seq.Content {
			if other != d && other.Line == d.Line {
				return false
			}
		}
	}
	return true
}

// splitLines splits data after each line feed, keeping the terminators.
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			lines = append(lines, data)
			break
		}
		lines = append(lines, data[:idx+1])
		data = data[idx+1:]
	}
	return lines
}

func detectYAMLIndent(lines [][]byte) int {
	for _, line := range lines {
		s := string(line)
		rest := strings.TrimLeft(s, " ")
		if n := len(s) - len(rest); n > 0 && strings.TrimSpace(rest) != "" {
			return n
		}
	}
	return 2
}
