package beanproto

import (
	"github.com/karagenc/beanproto/parser"
)

var defaultCommands = []string{
	"put <pri> <delay> <ttr> <bytes>\r\n<data>\r\n",
	"use <tube>\r\n",
	"reserve\r\n",
	"reserve-with-timeout <seconds>\r\n",
	"delete <id>\r\n",
	"release <id> <pri> <delay>\r\n",
	"bury <id> <pri>\r\n",
	"touch <id>\r\n",
	"watch <tube>\r\n",
	"ignore <tube>\r\n",
	"peek <id>\r\n",
	"peek-ready\r\n",
	"peek-delayed\r\n",
	"peek-buried\r\n",
	"kick <bound>\r\n",
	"kick-job <id>\r\n",
	"stats-job <id>\r\n",
	"stats-tube <tube>\r\n",
	"stats\r\n",
	"list-tubes\r\n",
	"list-tube-used\r\n",
	"list-tubes-watched\r\n",
	"quit\r\n",
	"pause-tube <tube> <delay>\r\n",
}

var defaultReplies = []string{
	"INSERTED <id>\r\n",
	"BURIED <id>\r\n",
	"BURIED\r\n",
	"EXPECTED_CRLF\r\n",
	"JOB_TOO_BIG\r\n",
	"DRAINING\r\n",
	"USING <tube>\r\n",
	"DEADLINE_SOON\r\n",
	"TIMED_OUT\r\n",
	"RESERVED <id> <bytes>\r\n<data>\r\n",
	"DELETED\r\n",
	"NOT_FOUND\r\n",
	"RELEASED\r\n",
	"TOUCHED\r\n",
	"WATCHING <count>\r\n",
	"NOT_IGNORED\r\n",
	"FOUND <id> <bytes>\r\n<data>\r\n",
	"KICKED <count>\r\n",
	"KICKED\r\n",
	"OK <bytes>\r\n<data>\r\n",
	"PAUSED\r\n",
	"OUT_OF_MEMORY\r\n",
	"INTERNAL_ERROR\r\n",
	"BAD_FORMAT\r\n",
	"UNKNOWN_COMMAND\r\n",
}

func defaultTypes() map[string]parser.Type {
	return map[string]parser.Type{
		"pri":     parser.Integer,
		"delay":   parser.Integer,
		"ttr":     parser.Integer,
		"bytes":   parser.Integer,
		"data":    parser.Binary,
		"id":      parser.Integer,
		"tube":    parser.Text,
		"bound":   parser.Integer,
		"seconds": parser.Integer,
		"count":   parser.Integer,
	}
}

// DefaultCatalog returns the beanstalkd command and reply signatures. The
// returned catalog is a fresh copy and may be modified.
func DefaultCatalog() *parser.Catalog {
	return &parser.Catalog{
		Types:    defaultTypes(),
		Commands: append([]string(nil), defaultCommands...),
		Replies:  append([]string(nil), defaultReplies...),
	}
}
