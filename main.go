package main

import (
	"flag"
	"log"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"shelfmap/internal/editor"
	"shelfmap/internal/history"
	"shelfmap/internal/render"
	"shelfmap/internal/shape"
)

func main() {
	configFile := flag.String("config", configPath(), "path to the TOML config file")
	flag.Parse()

	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	logger, closer, err := config.newLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	m, err := initialModel(config, logger, flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	m.autosave.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// initialModel builds the editor from config and opens filename when given.
func initialModel(config *Config, logger *slog.Logger, filename string) (model, error) {
	var saver *autosaver
	var ed *editor.Editor
	ed, err := editor.New(config.editorConfig(),
		editor.WithLogger(logger),
		editor.OnRecord(func(op history.Operation) { recorded(logger, ed, saver, op) }),
	)
	if err != nil {
		return model{}, err
	}

	exporter, err := render.NewExporter()
	if err != nil {
		return model{}, err
	}
	exporter.Location = config.locationConfig()

	projector := render.NewProjector(func() []shape.Shape { return ed.Shapes(nil) })
	ed.Subscribe(projector.Handle)

	m := model{
		ed:                ed,
		projector:         projector,
		exporter:          exporter,
		config:            config,
		log:               logger,
		mode:              ModeNormal,
		selectedFileIndex: -1,
	}
	if filename != "" {
		if err := m.openLayout(filename); err != nil {
			return model{}, err
		}
	}
	if config.Autosave {
		saver = newAutosaver(config.GetSavePath("autosave"+layoutExtension), logger)
		m.autosave = saver
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	return nil
}
