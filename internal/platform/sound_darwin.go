package platform

func soundCandidates() []soundCommand {
	return []soundCommand{
		{Name: "afplay", File: "/System/Library/Sounds/Glass.aiff"},
		{Name: "afplay", File: "/System/Library/Sounds/Ping.aiff"},
	}
}
