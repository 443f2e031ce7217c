package cli

import "github.com/alecthomas/kong"

// Commands is the kong grammar of the kanso binary.
type Commands struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Log debug output to stderr."`
	Storage string `help:"Storage driver (memory|json|sqlite|postgres). Overrides STORAGE_DRIVER."`
	DataDir string `help:"Data directory. Overrides DATA_DIR." type:"path"`

	Routine struct {
		Add    RoutineAddCmd    `cmd:"" help:"Add a routine."`
		List   RoutineListCmd   `cmd:"" help:"List routines with today's progress." default:"1"`
		Done   RoutineDoneCmd   `cmd:"" help:"Toggle today's completion of a routine."`
		Delete RoutineDeleteCmd `cmd:"" help:"Delete a routine."`
	} `cmd:"" help:"Manage routines."`
	Task struct {
		Add    TaskAddCmd    `cmd:"" help:"Add a task to a routine."`
		Done   TaskDoneCmd   `cmd:"" help:"Toggle a task."`
		Delete TaskDeleteCmd `cmd:"" help:"Remove a task from a routine."`
	} `cmd:"" help:"Manage routine tasks."`
	Habit struct {
		Add    HabitAddCmd    `cmd:"" help:"Add a habit."`
		List   HabitListCmd   `cmd:"" help:"List habits with the last seven days." default:"1"`
		Mark   HabitMarkCmd   `cmd:"" help:"Toggle a habit for today or a given day."`
		Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Manage habits and streaks."`
	Stats  StatsCmd  `cmd:"" help:"Show completion statistics."`
	Export ExportCmd `cmd:"" help:"Export all data as JSON or YAML."`
	Import ImportCmd `cmd:"" help:"Replace all data with a snapshot file."`
	Reset  ResetCmd  `cmd:"" help:"Delete all data."`
	Prefs  PrefsCmd  `cmd:"" help:"Show or change preferences."`
}

// Options are shared by the binary and tests.
func Options(version string) []kong.Option {
	return []kong.Option{
		kong.Name("kanso"),
		kong.Description("Routines, habits and streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": version},
	}
}
