package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch calls onChange with the reloaded config whenever
// the config file viper read is written. A config that
// fails validation is reported as an error, and the caller
// should keep using the previous one.
func Watch(v *viper.Viper, onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(LoadFrom(v))
	})
	v.WatchConfig()
}
