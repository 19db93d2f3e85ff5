package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// FileName is the name of the configuration file looked up in the home
// and working directories
const FileName = ".relflow.toml"

// FileContent is the layout of a configuration file
type FileContent struct {
	GitHub   GitHub   `toml:"github"`
	Jira     Jira     `toml:"jira"`
	Slack    Slack    `toml:"slack"`
	Workflow Workflow `toml:"workflow"`
}

// File holds the configuration file location
type File struct {
	Path string
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Configuration file read after ~/.config/relflow.toml, ~/" + FileName + " and ./" + FileName,
			Destination: &c.Path,
			Sources:     cli.EnvVars("RELFLOW_CONFIG"),
		},
	}
}

// Candidates returns the files to read, later ones overriding earlier ones
func (c *File) Candidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "relflow.toml"),
			filepath.Join(home, FileName),
		)
	}
	paths = append(paths, FileName)
	if c.Path != "" {
		paths = append(paths, c.Path)
	}
	return paths
}

// Load reads every candidate file that exists. An explicitly given file
// must exist.
func (c *File) Load() (*FileContent, error) {
	var content FileContent
	for _, path := range c.Candidates() {
		found, err := loadFile(path, &content)
		if err != nil {
			return nil, err
		}
		if !found && path == c.Path {
			return nil, goerr.New("config file not found",
				goerr.V("path", path),
				goerr.T(types.ErrTagConfig))
		}
	}
	return &content, nil
}

func loadFile(path string, content *FileContent) (bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to read config file",
			goerr.V("path", path),
			goerr.T(types.ErrTagConfig))
	}

	if err := toml.Unmarshal(raw, content); err != nil {
		return false, goerr.Wrap(err, "failed to parse config file",
			goerr.V("path", path),
			goerr.T(types.ErrTagConfig))
	}
	return true, nil
}
