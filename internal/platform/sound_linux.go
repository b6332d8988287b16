package platform

func soundCandidates() []soundCommand {
	return []soundCommand{
		{Name: "canberra-gtk-play", Args: []string{"--id", "complete", "--description", "Pomodoro"}},
		{Name: "paplay", File: "/usr/share/sounds/freedesktop/stereo/complete.oga"},
		{Name: "pw-play", File: "/usr/share/sounds/freedesktop/stereo/complete.oga"},
		{Name: "aplay", Args: []string{"-q"}, File: "/usr/share/sounds/alsa/Front_Center.wav"},
	}
}
