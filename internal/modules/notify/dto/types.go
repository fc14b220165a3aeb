package dto

type PluginInfo struct {
	Name    string
	Version string
	Binary  string
	Enabled bool
	Events  []string
}

type DoctorResult struct {
	Name   string
	OK     bool
	Detail string
}
