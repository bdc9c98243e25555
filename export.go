package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func withExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".shelfmap-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (m *model) saveLayout(filename string) (string, error) {
	data, err := m.ed.MarshalLayout()
	if err != nil {
		return "", err
	}
	path := m.config.GetSavePath(withExtension(filename, layoutExtension))
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	m.ed.MarkSaved()
	m.log.Info("layout saved", "path", path)
	return path, nil
}

func (m *model) openLayout(filename string) error {
	path := m.config.GetSavePath(withExtension(filename, layoutExtension))
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := m.ed.DeserializeLayout(data); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	m.filename = strings.TrimSuffix(filepath.Base(path), layoutExtension)
	return nil
}

func (m *model) exportPNG(filename string) (string, error) {
	path := m.config.GetSavePath(withExtension(filename, ".png"))
	if err := m.exporter.SavePNG(path, m.ed.Shapes(nil)); err != nil {
		return "", err
	}
	return path, nil
}

// exportVisualTXT writes the grid exactly as the view shows it, without
// cursor or selection marks.
func (m *model) exportVisualTXT(filename string) (string, error) {
	path := m.config.GetSavePath(withExtension(filename, ".txt"))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	height := m.height - 1
	if height < 1 {
		height = 24
	}
	v := m.view(height)
	if m.width < 1 {
		v.Cols = 80
	}
	for _, line := range m.grid(v, nil).Lines() {
		fmt.Fprintln(file, strings.TrimRight(line, " "))
	}
	return path, nil
}

func (m *model) scanLayoutFiles() {
	m.fileList = []string{}
	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			m.selectedFileIndex = -1
			return
		}
		dir = wd
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), layoutExtension) {
			m.fileList = append(m.fileList, strings.TrimSuffix(entry.Name(), layoutExtension))
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = m.fileList[0]
	} else {
		m.selectedFileIndex = -1
	}
}
