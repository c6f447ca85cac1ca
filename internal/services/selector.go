package services

// SelectWinner runs the weighted draw over the ordered candidate list. Each
// candidate is tested with its own fresh draw, in order: the first reward
// whose draw satisfies r < effectiveProbability wins and no later candidate
// is tried. This is deliberately NOT a single cumulative roulette draw; a
// later reward is only reached after every earlier one failed its own draw.
// A probability of exactly 0 can never win and a capped 1.0 always wins.
// Returns the index of the winner, or false when every candidate lost.
func SelectWinner(candidates []RewardProbability, random RandomSource) (int, bool) {
	for i := range candidates {
		if random.Float64() < candidates[i].EffectiveProbability {
			return i, true
		}
	}
	return -1, false
}
