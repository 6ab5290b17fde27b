package store

// Op names used in Error for diagnostics.
const (
	OpOpen          = "open"
	OpCreateTask    = "create task"
	OpPutTask       = "put task"
	OpGetTask       = "get task"
	OpListTasks     = "list tasks"
	OpDeleteTask    = "delete task"
	OpCreateNote    = "create note"
	OpGetNote       = "get note"
	OpListNotes     = "list notes"
	OpDeleteNote    = "delete note"
	OpAddEntry      = "add entry"
	OpListEntries   = "list entries"
	OpAllEntries    = "all entries"
	OpPutSetting    = "put setting"
	OpGetSetting    = "get setting"
	OpListSettings  = "list settings"
	OpDeleteSetting = "delete setting"
	OpListNames     = "list names"
	OpClear         = "clear"
	OpMigrate       = "migrate"
)

// Error wraps an underlying error with the store operation name.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "store: " + e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
