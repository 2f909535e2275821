package bootstrap

import (
	"github.com/jrsteele09/uigen-server/anonwork"
	"github.com/jrsteele09/uigen-server/projects"
)

// Decision is where a freshly authenticated user is sent. It is computed once
// per invocation and then executed. The variants are MigrateAnon, UseExisting
// and CreateNew.
type Decision interface {
	Kind() string
	decision()
}

// MigrateAnon turns anonymous work into a new project.
type MigrateAnon struct {
	Work anonwork.Work
}

// UseExisting opens the most recent existing project.
type UseExisting struct {
	Project projects.Project
}

// CreateNew creates an empty project because the user has none.
type CreateNew struct{}

func (MigrateAnon) Kind() string { return "migrate_anon" }
func (UseExisting) Kind() string { return "use_existing" }
func (CreateNew) Kind() string   { return "create_new" }

func (MigrateAnon) decision() {}
func (UseExisting) decision() {}
func (CreateNew) decision()   {}

func projectPath(id string) string {
	return "/" + id
}
