package main

import "time"

const (
	tickRate     = 15
	tickInterval = time.Second / tickRate

	statusEffectInterval = 250 * time.Millisecond
	archiveInterval      = 30 * time.Second
	heartbeatInterval    = 5 * time.Second
	disconnectAfter      = 15 * time.Second

	// commandsPerSecond bounds how fast one connection may push commands;
	// commandBurst absorbs short input flurries.
	commandsPerSecond = 30
	commandBurst      = 60

	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)
