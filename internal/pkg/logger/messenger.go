package logger

import "fmt"

// MessengerModule is the module name user-facing messages are logged under.
const MessengerModule = "Messenger"

const (
	debugPrefix = "Debug: "
	infoPrefix  = "Info: "
	errorPrefix = "Error: "
)

// Messenger produces the messages shown to the editor user. Each call logs the text and
// returns it so the caller can hand it to whatever displays it.
type Messenger struct {
	logger ILogger
}

func NewMessenger(l ILogger) *Messenger {
	return &Messenger{logger: l}
}

func (m *Messenger) Debug(format string, args ...interface{}) string {
	msg := debugPrefix + fmt.Sprintf(format, args...)
	m.logger.Debug(MessengerModule, msg, nil)
	return msg
}

func (m *Messenger) Info(format string, args ...interface{}) string {
	msg := infoPrefix + fmt.Sprintf(format, args...)
	m.logger.Info(MessengerModule, msg, nil)
	return msg
}

func (m *Messenger) Error(format string, args ...interface{}) string {
	msg := errorPrefix + fmt.Sprintf(format, args...)
	m.logger.Error(MessengerModule, msg, nil)
	return msg
}

// ErrorFrom renders err as a user message.
func (m *Messenger) ErrorFrom(err error) string {
	return m.Error("%s", err.Error())
}

// History returns the most recent user messages, newest first.
func (m *Messenger) History(limit, offset int) ([]LogEntry, error) {
	return m.logger.GetLogs(MessengerModule, "", limit, offset)
}
