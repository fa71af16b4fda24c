package catalog

var solarInfo = SystemInfo{
	Title: "Our Solar System",
	About: "Our Solar System consists of the Sun and everything that orbits around it, including eight planets, " +
		"dwarf planets, and countless smaller objects like asteroids and comets. It formed approximately 4.6 billion " +
		"years ago from the gravitational collapse of a giant interstellar molecular cloud. Miller's Planet from " +
		"Interstellar is included as a special feature: select it to open the wave scene.",
	GlowColor:   "#ffff99",
	GlowRadius:  6,
	NebulaColor: [3]string{"#0000ff", "#00ffff", "#8080ff"},
	VideoTitle:  "Miller's Planet from Interstellar",
	VideoURL:    "https://www.youtube.com/watch?v=60h6lpnSgck",
}

var solarBodies = []Body{
	{
		Name:          "Sun",
		Radius:        5,
		Distance:      0,
		Color:         "#ffdd00",
		RotationSpeed: 0.001,
		OrbitSpeed:    0,
		Description: "The Sun is the star at the center of our Solar System. It's about 4.6 billion years old " +
			"and accounts for 99.86% of the mass in the Solar System.",
		Facts: []string{
			"The Sun is so large that about 1.3 million Earths could fit inside it.",
			"The Sun's core reaches temperatures of 15 million degrees Celsius.",
			"Light from the Sun takes about 8 minutes to reach Earth.",
			"The Sun converts 600 million tons of hydrogen into helium every second.",
		},
	},
	{
		Name:          "Mercury",
		Radius:        0.4,
		Distance:      10,
		Color:         "#8c8c8c",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.04,
		Description:   "Mercury is the smallest and innermost planet in the Solar System.",
		Facts: []string{
			"Mercury has no atmosphere, which causes it to have extreme temperature variations.",
			"A day on Mercury lasts 176 Earth days.",
			"Mercury's surface resembles our Moon with many impact craters.",
			"Despite being closest to the Sun, Venus is actually hotter than Mercury.",
		},
	},
	{
		Name:          "Venus",
		Radius:        0.9,
		Distance:      15,
		Color:         "#e6e6fa",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.03,
		Description:   "Venus is the second planet from the Sun and the hottest planet in our Solar System.",
		Facts: []string{
			"Venus rotates backwards compared to other planets.",
			"A day on Venus is longer than its year - it takes 243 Earth days to rotate once.",
			"Venus has a crushing surface pressure 90 times that of Earth.",
			"Venus is the brightest natural object in Earth's night sky after the Moon.",
		},
	},
	{
		Name:          "Earth",
		Radius:        1,
		Distance:      20,
		Color:         "#0000ff",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.025,
		Description:   "Earth is the third planet from the Sun, the only astronomical object known to harbor life.",
		Facts: []string{
			"Earth is the only planet not named after a god or goddess.",
			"Earth's atmosphere is 78% nitrogen, 21% oxygen, and 1% other gases.",
			"70% of Earth's surface is covered by water.",
			"Earth has a powerful magnetic field that protects us from solar radiation.",
		},
	},
	{
		Name:          "Mars",
		Radius:        0.5,
		Distance:      25,
		Color:         "#ff0000",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.02,
		Description:   "Mars is the fourth planet from the Sun and is often called the 'Red Planet'.",
		Facts: []string{
			"Mars has the largest dust storms in the Solar System.",
			"Mars has two small moons: Phobos and Deimos.",
			"Mars has seasons like Earth, but they last twice as long.",
			"Olympus Mons on Mars is the tallest mountain in the Solar System at 22km high.",
		},
	},
	{
		Name:          "Miller's Planet",
		Radius:        1.3,
		Distance:      30,
		Color:         "#0077be",
		RotationSpeed: 0.008,
		OrbitSpeed:    0.015,
		Description: "Miller's Planet from the movie Interstellar. This planet orbits extremely close to a " +
			"supermassive black hole called Gargantua.",
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
		Name:          "Jupiter",
		Radius:        2.5,
		Distance:      35,
		Color:         "#ffa500",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.01,
		Description:   "Jupiter is the fifth planet from the Sun and the largest in the Solar System.",
		Facts: []string{
			"Jupiter has the shortest day of all the planets, rotating once every 10 hours.",
			"The Great Red Spot is a storm that has been raging for at least 400 years.",
			"Jupiter has at least 79 known moons.",
			"Jupiter's magnetic field is 14 times stronger than Earth's.",
		},
	},
	{
		Name:          "Saturn",
		Radius:        2.2,
		Distance:      45,
		Color:         "#ffd700",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.0075,
		Description:   "Saturn is the sixth planet from the Sun and is famous for its spectacular ring system.",
		Facts: []string{
			"Saturn's rings are mostly made of water ice.",
			"Saturn has at least 82 moons, the largest being Titan.",
			"Saturn is the least dense planet in the Solar System.",
			"A day on Saturn lasts only 10.7 Earth hours.",
		},
		Decoration: DecorRings,
	},
	{
		Name:          "Uranus",
		Radius:        1.8,
		Distance:      55,
		Color:         "#00ffff",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.005,
		Description:   "Uranus is the seventh planet from the Sun and an ice giant.",
		Facts: []string{
			"Uranus rotates on its side with an axial tilt of 98 degrees.",
			"Uranus was the first planet discovered with a telescope.",
			"Uranus has 13 known rings.",
			"Uranus appears blue-green due to methane in its atmosphere.",
		},
	},
	{
		Name:          "Neptune",
		Radius:        1.7,
		Distance:      65,
		Color:         "#0000cd",
		RotationSpeed: 0.005,
		OrbitSpeed:    0.004,
		Description:   "Neptune is the eighth and farthest known planet from the Sun.",
		Facts: []string{
			"Neptune was located through mathematical calculations.",
			"Neptune has the strongest winds in the Solar System, reaching speeds of 2,100 km/h.",
			"Neptune's largest moon, Triton, orbits the planet backwards.",
			"A year on Neptune lasts 165 Earth years.",
		},
	},
}
