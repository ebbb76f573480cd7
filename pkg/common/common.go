package common

import (
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake-based unique int64 id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake-based unique id string.
func UUID() string {
	return snowflakeNode.Generate().String()
}

// FileExists tests a file path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MakeDir creates dir if it does not exist.
func MakeDir(path string) {
	if !FileExists(path) {
		_ = os.MkdirAll(path, 0755)
	}
}

// IsEmptyOrNA is true for "", whitespace and the N/A placeholder.
func IsEmptyOrNA(val string) bool {
	v := strings.TrimSpace(val)
	return v == "" || v == "N/A"
}
