package config

var BuildLogger = (*Logger).build
