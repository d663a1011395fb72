package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Logger é a interface para logging em pares chave/valor
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// StdLogger é uma implementação de Logger sobre a biblioteca padrão
type StdLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	warnLogger  *log.Logger
}

// NewLogger cria uma nova instância de Logger
func NewLogger() Logger {
	return &StdLogger{
		infoLogger:  log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLogger: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
		debugLogger: log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile),
		warnLogger:  log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// Info registra uma mensagem de informação
func (l *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	l.infoLogger.Output(2, format(msg, keysAndValues))
}

// Error registra uma mensagem de erro
func (l *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	l.errorLogger.Output(2, format(msg, keysAndValues))
}

// Debug registra uma mensagem de debug
func (l *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.debugLogger.Output(2, format(msg, keysAndValues))
}

// Warn registra uma mensagem de aviso
func (l *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.warnLogger.Output(2, format(msg, keysAndValues))
}

// format monta a linha de log com os pares chave/valor no formato chave=valor.
// Um valor sem chave correspondente é emitido sozinho no fim da linha.
func format(msg string, keysAndValues []interface{}) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, " %v", keysAndValues[i])
		}
	}
	return b.String()
}
