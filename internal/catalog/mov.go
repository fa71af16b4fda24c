package catalog

// The Mov system is built around the Interstellar setting. Gargantua is drawn
// as a black hole with an accretion halo and cannot be picked.
var movInfo = SystemInfo{
	Title: "Gargantua (Interstellar)",
	About: "A movie-themed system modelled on Interstellar. The supermassive black hole Gargantua is circled by " +
		"the candidate worlds visited by the Endurance crew. Miller's Planet orbits closest, deep in the black " +
		"hole's gravity well; select it to open the wave scene.",
	GlowColor:   "#ffb347",
	GlowRadius:  7,
	NebulaColor: [3]string{"#6a0dad", "#ff8c00", "#4b0082"},
	VideoTitle:  "Miller's Planet from Interstellar",
	VideoURL:    "https://www.youtube.com/watch?v=60h6lpnSgck",
}

var movBodies = []Body{
	{
		Name:          "Gargantua",
		Radius:        5.5,
		Distance:      0,
		Color:         "#050505",
		RotationSpeed: 0.002,
		OrbitSpeed:    0,
		Description:   "Gargantua is a rapidly spinning supermassive black hole, roughly 100 million times the mass of the Sun.",
		Facts: []string{
			"Its glowing ring is an accretion disk of superheated gas, lensed over and under the shadow.",
			"Gargantua spins at nearly the speed of light, which lets planets orbit so close.",
			"The visual effects team worked with physicist Kip Thorne to render it.",
			"Time slows dramatically for anything orbiting near its event horizon.",
		},
		Decoration: DecorHalo,
		NoPick:     true,
	},
	{
		Name:          "Miller's Planet",
		Radius:        1.3,
		Distance:      14,
		Color:         "#0077be",
		RotationSpeed: 0.008,
		OrbitSpeed:    0.035,
		Description: "Miller's Planet is an ocean world orbiting extremely close to Gargantua, where time runs " +
			"slower than anywhere else the crew visits.",
		Facts: []string{
			"Due to extreme time dilation, 1 hour on Miller's Planet equals 7 years on Earth.",
			"The planet is covered by a shallow ocean with massive tidal waves.",
			"The waves are caused by the gravitational pull of the black hole Gargantua.",
			"The planet was named after Dr. Miller, a scientist who landed there to explore its potential for human habitation.",
		},
		ShowVideo:  true,
		Decoration: DecorWaterShell,
	},
	{
		Name:          "Mann's Planet",
		Radius:        1.6,
		Distance:      26,
		Color:         "#d8e4ec",
		RotationSpeed: 0.004,
		OrbitSpeed:    0.018,
		Description:   "Mann's Planet is a frozen world with ammonia-laced air and clouds of solid ice.",
		Facts: []string{
			"Dr. Mann falsified his data to lure a rescue mission.",
			"Its surface is buried under glaciers and frozen cloud formations.",
			"The atmosphere contains ammonia and is not breathable.",
			"The planet was the mission's second stop.",
		},
	},
	{
		Name:          "Endurance",
		Radius:        0.6,
		Distance:      34,
		Color:         "#c0c0c0",
		RotationSpeed: 0.02,
		OrbitSpeed:    0.012,
		Description:   "The Endurance is the ring-shaped spacecraft that carries the crew through the wormhole.",
		Facts: []string{
			"It is built from twelve modules arranged in a rotating ring.",
			"The ring spins to produce artificial gravity.",
			"It docks with the Ranger and Lander shuttles.",
			"Its final approach slingshots around Gargantua.",
		},
	},
	{
		Name:          "Edmunds' Planet",
		Radius:        1.4,
		Distance:      44,
		Color:         "#c2a878",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.008,
		Description:   "Edmunds' Planet is the last candidate world, rocky and desert-like but with a breathable atmosphere.",
		Facts: []string{
			"Dr. Edmunds' beacon kept transmitting promising data.",
			"It lies far enough from Gargantua to escape severe time dilation.",
			"Amelia Brand sets up the colony base here.",
			"The planet is the film's final hope for humanity.",
		},
	},
	{
		Name:          "Tesseract",
		Radius:        1.2,
		Distance:      54,
		Color:         "#e0c080",
		RotationSpeed: 0.01,
		OrbitSpeed:    0.006,
		Description:   "The Tesseract is a higher-dimensional construct inside Gargantua where time appears as a physical dimension.",
		Facts: []string{
			"Cooper reaches it after falling past the event horizon.",
			"It lets him see his daughter's bedroom across many moments of time.",
			"Gravity is the only force that crosses its dimensions.",
			"He sends quantum data in Morse code through a watch's second hand.",
		},
		Shape: ShapeCube,
	},
}
