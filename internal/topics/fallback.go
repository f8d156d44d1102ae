package topics

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Emergency topics used when a category has no curated list
const (
	EmergencyPlayerTopic   = "Sun"
	EmergencyImposterTopic = "Moon"
)

// fallbackData holds curated per-category topic lists used when the
// external provider is unavailable
var fallbackData = map[string][]string{
	"animals": {
		"Bengal Tiger", "Indian Elephant", "Snow Leopard", "Asiatic Lion",
		"Peacock", "King Cobra", "Sloth Bear", "Red Panda", "Indian Wolf",
		"Striped Hyena", "Wild Boar", "Mongoose", "Spotted Deer",
		"Water Buffalo", "Camel", "Yak", "Eagle", "Vulture", "Owl",
		"Monkey", "Squirrel",
	},
	"professions": {
		"Surgeon", "Dentist", "Pharmacist", "Nurse", "Psychiatrist",
		"Software Engineer", "Data Analyst", "Digital Marketer",
		"Investment Banker", "Cybersecurity Expert", "Project Manager",
		"Police Inspector", "Lawyer", "Judge", "Firefighter",
		"Film Director", "News Anchor", "Wedding Photographer",
		"Fashion Designer", "Security Guard", "Electrician", "Plumber",
		"Carpenter", "Barber", "Gardener", "Shopkeeper",
	},
	"countries": {
		"India", "Pakistan", "Bangladesh", "Sri Lanka", "Nepal", "Bhutan",
		"China", "Japan", "South Korea", "Thailand", "Vietnam", "Indonesia",
		"Malaysia", "Singapore", "Saudi Arabia", "UAE", "UK", "France",
		"Germany", "Italy", "Spain", "Russia", "USA", "Canada", "Mexico",
		"Brazil", "Australia", "New Zealand", "South Africa", "Egypt",
		"Switzerland", "Sweden", "Norway", "Netherlands", "Greece",
		"Turkey", "Portugal",
	},
	"fruits": {
		"Mango", "Banana", "Apple", "Orange", "Guava", "Papaya",
		"Pomegranate", "Watermelon", "Muskmelon", "Grapes", "Pineapple",
		"Lychee", "Jackfruit", "Pear", "Peach", "Plum", "Cherry",
		"Strawberry", "Coconut", "Tamarind", "Dragon Fruit", "Kiwi",
		"Avocado", "Fig", "Lemon", "Grapefruit", "Passion Fruit",
	},
	"sports": {
		"Cricket", "Kabaddi", "Hockey", "Football", "Badminton", "Tennis",
		"Table Tennis", "Wrestling", "Boxing", "Archery", "Shooting",
		"Athletics", "Swimming", "Cycling", "Chess", "Carrom", "Kho-Kho",
		"Basketball", "Volleyball", "Rugby", "Golf", "Snooker", "Squash",
		"Formula 1", "Judo", "Karate", "Gymnastics", "Rowing", "Surfing",
		"Skating", "Ice Hockey",
	},
	"movies": {
		"Sholay", "DDLJ", "Lagaan", "Dangal", "3 Idiots", "Gully Boy",
		"Queen", "Piku", "Barfi!", "Hera Pheri", "Andaz Apna Apna",
		"Chennai Express", "Drishyam", "Andhadhun", "Raazi", "Kahaani",
		"Jab We Met", "Chak De! India", "Om Shanti Om", "RRR",
		"Baahubali 2", "Jawan", "12th Fail", "Tumbbad", "Newton",
	},
	"superheroes": {
		"Shaktimaan", "Krrish", "Flying Jatt", "Minnal Murali", "Nagraj",
		"Super Commando Dhruva", "Iron Man", "Spider-Man", "Batman",
		"Superman", "Wonder Woman", "Thor", "Hulk", "Captain America",
		"Black Panther", "Doctor Strange", "Flash", "Aquaman", "Shazam",
		"Wolverine", "Deadpool", "Black Widow", "Ant-Man", "Hawkeye",
	},
	"foods": {
		"Samosa", "Jalebi", "Dhokla", "Vada Pav", "Pani Puri", "Pav Bhaji",
		"Idli", "Dosa", "Uttapam", "Biryani", "Butter Chicken",
		"Paneer Tikka", "Dal Makhani", "Chole Bhature", "Rajma Chawal",
		"Naan", "Gulab Jamun", "Rasgulla", "Kulfi", "Lassi", "Masala Chai",
		"Poha", "Khichdi", "Momos", "Malai Kofta", "Tandoori Chicken",
		"Kheer", "Gajar Ka Halwa", "Modak", "Thandai",
	},
	"celebrities": {
		"Shah Rukh Khan", "Salman Khan", "Aamir Khan", "Amitabh Bachchan",
		"Rajinikanth", "Akshay Kumar", "Hrithik Roshan", "Ranbir Kapoor",
		"Deepika Padukone", "Priyanka Chopra", "Alia Bhatt", "Kajol",
		"Sachin Tendulkar", "Virat Kohli", "MS Dhoni", "Rohit Sharma",
		"A.R. Rahman", "Arijit Singh", "Shreya Ghoshal", "Lata Mangeshkar",
		"Kapil Sharma", "Prabhas", "Allu Arjun", "Neeraj Chopra",
		"PV Sindhu", "Mary Kom",
	},
	"tv_shows": {
		"Mirzapur", "Sacred Games", "Panchayat", "The Family Man",
		"Scam 1992", "Kota Factory", "Delhi Crime", "Gullak", "Farzi",
		"Paatal Lok", "Taarak Mehta Ka Ooltah Chashmah", "CID",
		"Ramayan", "Mahabharat", "Bigg Boss", "Kaun Banega Crorepati",
		"Shark Tank India", "Indian Idol", "Game of Thrones", "Friends",
		"The Office", "Breaking Bad", "Stranger Things", "Squid Game",
	},
}

// Fallback picks topic pairs from curated per-category lists.
// Safe for concurrent use.
type Fallback struct {
	mu       sync.Mutex
	random   *rand.Rand
	lastPair *TopicPair
}

// NewFallback creates a fallback topic source
func NewFallback() *Fallback {
	return &Fallback{
		random: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// HasCategory reports whether a curated list exists for the category
func (f *Fallback) HasCategory(category string) bool {
	_, ok := fallbackData[strings.ToLower(category)]
	return ok
}

// Topics picks two distinct items for the category, avoiding an immediate
// repeat of the previous pair. Unknown categories get the emergency pair.
func (f *Fallback) Topics(category string) *TopicPair {
	choices, ok := fallbackData[strings.ToLower(category)]
	if !ok || len(choices) < 2 {
		return &TopicPair{
			PlayerTopic:   EmergencyPlayerTopic,
			ImposterTopic: EmergencyImposterTopic,
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	pair := f.samplePair(choices)
	for f.lastPair != nil && *pair == *f.lastPair {
		pair = f.samplePair(choices)
	}
	f.lastPair = pair

	return pair
}

func (f *Fallback) samplePair(choices []string) *TopicPair {
	i := f.random.Intn(len(choices))
	j := f.random.Intn(len(choices) - 1)
	if j >= i {
		j++
	}
	return &TopicPair{
		PlayerTopic:   choices[i],
		ImposterTopic: choices[j],
	}
}
