package telemetry

// Difficulty cutoffs. With elevation gain available:
//
//	easy           < 30 km and < 300 m gain
//	moderate       < 60 km and < 800 m gain
//	difficult      < 100 km and < 1500 m gain
//	very_difficult everything above
//
// Without elevation the tier is decided on distance alone: 40/80/120 km.
func Classify(distanceKm float64, gainM *float64) Difficulty {
	if gainM == nil {
		switch {
		case distanceKm < 40:
			return DifficultyEasy
		case distanceKm < 80:
			return DifficultyModerate
		case distanceKm < 120:
			return DifficultyDifficult
		}
		return DifficultyVeryDifficult
	}

	gain := *gainM
	switch {
	case distanceKm < 30 && gain < 300:
		return DifficultyEasy
	case distanceKm < 60 && gain < 800:
		return DifficultyModerate
	case distanceKm < 100 && gain < 1500:
		return DifficultyDifficult
	}
	return DifficultyVeryDifficult
}
