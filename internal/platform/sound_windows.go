package platform

func soundCandidates() []soundCommand {
	return []soundCommand{
		{
			Name: "powershell",
			Args: []string{"-NoProfile", "-NonInteractive", "-Command", "[System.Media.SystemSounds]::Asterisk.Play(); Start-Sleep -Milliseconds 600"},
		},
	}
}
