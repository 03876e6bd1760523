package logger

import (
	"sync"
)

// named holds the component loggers handed out by Get.
var named sync.Map

// Register stores l under name, replacing any previous entry.
func Register(name string, l *Logger) {
	named.Store(name, l)
}

// Get returns the logger registered under name. Unknown names get the
// global logger scoped to that component; the result is cached so later
// calls share it.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	l, _ := named.LoadOrStore(name, GetGlobalLogger().WithComponent(name))
	return l.(*Logger)
}

// RegisterDefaults rebuilds the named loggers from the current global
// logger. Call it after Init so they pick up the configured level and
// format.
func RegisterDefaults(names ...string) {
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
