package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "botroom"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/botroom"
	DefaultConfigFile  = "config.yaml"
	DefaultStorePath   = "~/.config/botroom/botroom.db"
	Version            = "v0.1.0"

	// Environment overrides
	EnvStore        = "BOTROOM_STORE"
	EnvDBConnection = "BOTROOM_DB_CONNECTION"
	EnvUserEmail    = "BOTROOM_USER_EMAIL"
	EnvDebug        = "BOTROOM_DEBUG"

	// DefaultStoreTimeout bounds a single remote store call
	DefaultStoreTimeout = 10 * time.Second

	// DefaultDisplayName is shown when no signed-in identity is available
	DefaultDisplayName = "User"

	// Toast titles and messages
	ToastBotCreated    = "Bot Created"
	ToastBotUpdated    = "Bot Updated"
	ToastBotDeleted    = "Bot Deleted"
	ToastError         = "Error"
	ToastInvalidBot    = "Invalid Bot"
	MsgCreateFailed    = "Failed to create bot. Please try again."
	MsgUpdateFailed    = "Failed to update bot. Please try again."
	MsgDeleteFailed    = "Failed to delete bot. Please try again."
	MsgFetchFailed     = "Failed to fetch data. Please try again."
	MsgCreatedFmt      = "Successfully created bot %q"
	MsgUpdatedFmt      = "Successfully updated bot %q"
	MsgDeletedFmt      = "Successfully deleted bot %q"
	MemoryStorePrefix  = "memory:"
	KeyringDSN         = "keyring"

	// Desktop tray companion
	TrayExecutable         = "botroom-tray"
	TrayLockfileName       = "botroom-tray.lock"
	NotificationDurationMs = 5000

	PostgresURLPrefix  = "postgres://"
	PostgresURLPrefix2 = "postgresql://"
)

// Session States
const (
	StateRoster SessionState = iota
	StateAdding
	StateEditing
	StateConfirmDelete
)
