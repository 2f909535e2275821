package bootstrap

// State is a step of the sign-in/sign-up workflow.
type State int

const (
	StateIdle State = iota
	StateAuthenticating
	StateAuthFailed
	StateAuthenticated
	StateResolvingWork
	StateMigratingAnon
	StateNavigated
	StateListingProjects
	StateNavigatedExisting
	StateCreatingNew
	StateNavigatedNew
	StateDone
	StateErrored
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StateAuthenticating:    "authenticating",
	StateAuthFailed:        "auth_failed",
	StateAuthenticated:     "authenticated",
	StateResolvingWork:     "resolving_work",
	StateMigratingAnon:     "migrating_anon",
	StateNavigated:         "navigated",
	StateListingProjects:   "listing_projects",
	StateNavigatedExisting: "navigated_existing",
	StateCreatingNew:       "creating_new",
	StateNavigatedNew:      "navigated_new",
	StateDone:              "done",
	StateErrored:           "errored",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transitions follow s.
func (s State) Terminal() bool {
	return s == StateAuthFailed || s == StateDone || s == StateErrored
}
