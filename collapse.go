package rumetaphone

// none marks the missing neighbour at either end of a token.
const none rune = 0

// devoice maps a voiced consonant to its unvoiced counterpart. Any other
// rune is returned unchanged.
func devoice(r rune) rune {
	switch r {
	case 'Б':
		return 'П'
	case 'В':
		return 'Ф'
	case 'Г':
		return 'К'
	case 'Д':
		return 'Т'
	case 'З':
		return 'С'
	}
	return r
}

// protects reports whether a following r keeps the preceding consonant
// voiced: vowels and sonorants do.
func protects(r rune) bool {
	switch r {
	case 'А', 'У', 'И', 'Л', 'М', 'Н':
		return true
	}
	return false
}

// collapse drops letters repeating their predecessor and devoices
// consonants not protected by their successor. prev and next always refer
// to the uncollapsed token.
func collapse(token string) []rune {
	chars := []rune(token)
	result := make([]rune, 0, len(chars))
	for j, current := range chars {
		prev, next := none, none
		if j > 0 {
			prev = chars[j-1]
		}
		if j < len(chars)-1 {
			next = chars[j+1]
		}
		if current == prev {
			continue
		}
		if protects(next) {
			result = append(result, current)
			continue
		}
		if current = devoice(current); current != prev {
			result = append(result, current)
		}
	}
	return result
}
