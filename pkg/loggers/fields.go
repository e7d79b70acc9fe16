package loggers

import "go.uber.org/zap"

func SpecKey(key string) zap.Field {
	return zap.String("spec", key)
}

func Path(path string) zap.Field {
	return zap.String("path", path)
}
