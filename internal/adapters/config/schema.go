package config

// WorkspaceFile represents the structure of the pnpm-workspace.yaml file.
type WorkspaceFile struct {
	Packages []string `yaml:"packages"`
}

// SettingsFile represents the structure of the optional pnprune.yaml file.
type SettingsFile struct {
	OutDir     string `yaml:"outDir"`
	Lockfile   string `yaml:"lockfile"`
	Docker     bool   `yaml:"docker"`
	Production bool   `yaml:"production"`
	Cache      *bool  `yaml:"cache"`
}

// PackageJSON is the subset of package.json needed to place a workspace.
type PackageJSON struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}
