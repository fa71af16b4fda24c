package catalog

var proximaInfo = SystemInfo{
	Title: "Proxima Centauri System",
	About: "Proxima Centauri is the closest star to our Sun at just 4.2 light-years away. It's a small red dwarf " +
		"star with at least three known exoplanets, including Proxima b which is potentially habitable. As part of " +
		"the Alpha Centauri star system, it's a prime target for future interstellar exploration missions.",
	GlowColor:   "#ff9980",
	GlowRadius:  4.5,
	NebulaColor: [3]string{"#ff2000", "#ff8000", "#ff4040"},
}

var proximaBodies = []Body{
	{
		Name:          "Proxima Centauri",
		Radius:        3.5,
		Distance:      0,
		Color:         "#ff6347",
		RotationSpeed: 0.001,
		OrbitSpeed:    0,
		Description:   "Proxima Centauri is a small, low-mass red dwarf star located 4.2 light-years away from the Sun.",
		Facts: []string{
			"Proxima Centauri is part of the Alpha Centauri star system.",
			"It's only about 12% the mass of our Sun and much dimmer.",
			"This red dwarf emits powerful flares.",
			"It's expected to survive for trillions of years.",
		},
	},
	{
		Name:          "Proxima b",
		Radius:        1.1,
		Distance:      15,
		Color:         "#a0522d",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.03,
		Description:   "Proxima b is an exoplanet orbiting within the habitable zone of Proxima Centauri.",
		Facts: []string{
			"Proxima b orbits its star every 11.2 Earth days.",
			"The planet is tidally locked, meaning one side always faces the star.",
			"It receives about 65% of the energy from its star that Earth gets from the Sun.",
			"Proxima b is potentially habitable.",
		},
	},
	{
		Name:          "Proxima c",
		Radius:        2,
		Distance:      30,
		Color:         "#4682b4",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.015,
		Description:   "Proxima c is a candidate exoplanet orbiting Proxima Centauri.",
		Facts: []string{
			"Proxima c takes about 5 years to complete one orbit.",
			"It's likely too cold for liquid water on its surface.",
			"The planet was discovered through radial velocity measurements.",
			"It's still considered a candidate planet.",
		},
	},
	{
		Name:          "Proxima d",
		Radius:        0.4,
		Distance:      8,
		Color:         "#708090",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.06,
		Description:   "Proxima d is a small exoplanet orbiting Proxima Centauri.",
		Facts: []string{
			"Proxima d orbits very close to its star, completing an orbit in just 5 days.",
			"It's likely too hot for liquid water on its surface.",
			"The planet was discovered in 2022.",
			"It may be similar to Mercury in our Solar System.",
		},
	},
}
