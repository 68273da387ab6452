package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/botroom/internal/constants"
	"github.com/julianstephens/botroom/internal/logger"
)

var findProcessFunc = ps.FindProcess

// ErrTrayNotRunning is returned when no live tray companion is found.
var ErrTrayNotRunning = errors.New("botroom-tray is not running")

// TrayPayload is the body posted to the tray companion.
type TrayPayload struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	Destructive bool   `json:"destructive"`
	DurationMs  uint32 `json:"duration_ms"`
}

// Tray forwards notifications to the botroom-tray desktop companion. The
// companion advertises itself through a lockfile of the form
// "port|pid|secret" in the config directory.
type Tray struct {
	lockfilePath string
	client       *http.Client
}

func NewTray(configDir string) *Tray {
	return &Tray{
		lockfilePath: filepath.Join(configDir, constants.TrayLockfileName),
		client:       &http.Client{Timeout: 2 * time.Second},
	}
}

// Notify delivers n to the tray. A missing tray is logged at debug level
// only; the terminal surface still shows the message.
func (t *Tray) Notify(n Notification) {
	if err := t.Send(n); err != nil {
		logger.Debug("tray notification skipped", "error", err)
	}
}

// Send delivers n and reports any failure.
func (t *Tray) Send(n Notification) error {
	port, secret, err := findTrayProcess(t.lockfilePath)
	if err != nil {
		return err
	}

	payload := TrayPayload{
		Title:       n.Title,
		Text:        n.Description,
		Destructive: n.Severity == SeverityDestructive,
		DurationMs:  constants.NotificationDurationMs,
	}
	return t.post(port, secret, payload)
}

func findTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutable) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutable, process.Executable())
	}

	return port, secret, nil
}

func (t *Tray) post(port, secret string, payload TrayPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Botroom-Secret", secret)

	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("tray notification failed with status %d: %s", res.StatusCode, string(msg))
}
