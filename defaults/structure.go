package defaults

import (
	"time"

	"github.com/ts4z/pkoledger/model"
)

const levelDuration = 20 * time.Minute

func makeLevel(sb, bb, ante int64) model.BlindLevel {
	return model.BlindLevel{
		SmallBlind: sb,
		BigBlind:   bb,
		Ante:       ante,
		Duration:   levelDuration,
	}
}

// Structure is the house blind schedule.
func Structure() []model.BlindLevel {
	return []model.BlindLevel{
		makeLevel(25, 50, 0),
		makeLevel(50, 100, 0),
		makeLevel(75, 150, 0),
		makeLevel(100, 200, 25),
		makeLevel(150, 300, 25),
		makeLevel(200, 400, 50),
		makeLevel(300, 600, 75),
		makeLevel(400, 800, 100),
		makeLevel(500, 1000, 100),
		makeLevel(600, 1200, 200),
		makeLevel(800, 1600, 200),
		makeLevel(1000, 2000, 300),
		makeLevel(1500, 3000, 400),
		makeLevel(2000, 4000, 500),
		makeLevel(3000, 6000, 1000),
		makeLevel(4000, 8000, 1000),
		makeLevel(5000, 10000, 1000),
		makeLevel(6000, 12000, 2000),
		makeLevel(8000, 16000, 2000),
		makeLevel(10000, 20000, 3000),
	}
}
