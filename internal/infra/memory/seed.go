package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MoNiLBaRiYa/BookIt/internal/domain"
)

const seedDays = 30

var eveningCategories = map[string]bool{
	"Adventure": true,
	"Leisure":   true,
	"Camping":   true,
}

// Seed заполняет хранилище демо-каталогом и слотами на seedDays дней начиная с завтрашнего дня.
// Возвращает число созданных слотов
func Seed(s *Store, now time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	created := 0
	for i, e := range demoCatalog() {
		exp := s.AddExperience(e)

		for day := 1; day <= seedDays; day++ {
			date := today.AddDate(0, 0, day)

			s.AddSlot(domain.Slot{
				ExperienceID:   exp.ID,
				Date:           date,
				StartTime:      "06:00",
				EndTime:        "09:00",
				TotalSpots:     10,
				AvailableSpots: 3 + (i*7+day*3)%8,
			})
			s.AddSlot(domain.Slot{
				ExperienceID:   exp.ID,
				Date:           date,
				StartTime:      "14:00",
				EndTime:        "17:00",
				TotalSpots:     10,
				AvailableSpots: 3 + (i*5+day*3+1)%8,
			})
			created += 2

			if eveningCategories[exp.Category] {
				s.AddSlot(domain.Slot{
					ExperienceID:   exp.ID,
					Date:           date,
					StartTime:      "18:00",
					EndTime:        "21:00",
					TotalSpots:     8,
					AvailableSpots: 2 + (i+day)%6,
				})
				created++
			}
		}
	}

	return created
}

func demoCatalog() []domain.Experience {
	return []domain.Experience{
		{
			Title:       "Sunrise Hot Air Balloon Ride",
			Description: "Experience the magic of floating above the clouds during sunrise. This unforgettable hot air balloon adventure offers breathtaking panoramic views of the landscape below. Perfect for couples, families, and adventure seekers looking for a unique perspective of the world.",
			Location:    "Jaipur, Rajasthan",
			Price:       decimal.NewFromInt(8500),
			Duration:    "3 hours",
			Category:    "Adventure",
			ImageURL:    "https://images.unsplash.com/photo-1519659528534-7fd733a832a0?w=800&q=80",
			Rating:      4.8,
			ReviewCount: 342,
			Highlights: []string{
				"Witness stunning sunrise views",
				"Professional pilot and crew",
				"Champagne celebration after landing",
				"Flight certificate included",
			},
			Included: []string{
				"Hotel pickup and drop-off",
				"Pre-flight refreshments",
				"Flight certificate",
				"Champagne toast",
				"Insurance coverage",
			},
		},
		{
			Title:       "Scuba Diving in Andaman",
			Description: "Dive into the crystal-clear waters of the Andaman Sea and explore vibrant coral reefs teeming with marine life. This scuba diving experience is suitable for both beginners and certified divers, with professional instructors ensuring your safety throughout.",
			Location:    "Havelock Island, Andaman",
			Price:       decimal.NewFromInt(4500),
			Duration:    "4 hours",
			Category:    "Water Sports",
			ImageURL:    "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=800&q=80",
			Rating:      4.9,
			ReviewCount: 567,
			Highlights: []string{
				"Explore vibrant coral reefs",
				"Spot exotic marine life",
				"Professional PADI instructors",
				"All equipment provided",
			},
			Included: []string{
				"Diving equipment rental",
				"Professional instructor",
				"Underwater photography",
				"Safety briefing",
				"Refreshments",
			},
		},
		{
			Title:       "Himalayan Trekking Adventure",
			Description: "Embark on a thrilling trek through the majestic Himalayas. This multi-day adventure takes you through pristine forests, remote villages, and offers spectacular mountain views. Perfect for experienced trekkers seeking an authentic mountain experience.",
			Location:    "Manali, Himachal Pradesh",
			Price:       decimal.NewFromInt(12000),
			Duration:    "5 days",
			Category:    "Trekking",
			ImageURL:    "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&q=80",
			Rating:      4.7,
			ReviewCount: 234,
			Highlights: []string{
				"Trek through pristine valleys",
				"Camp under the stars",
				"Visit remote mountain villages",
				"Experienced trek leader",
			},
			Included: []string{
				"Camping equipment",
				"All meals during trek",
				"Professional guide",
				"Permits and fees",
				"First aid kit",
			},
		},
		{
			Title:       "Wildlife Safari in Ranthambore",
			Description: "Experience the thrill of spotting Bengal tigers in their natural habitat. This guided safari takes you through Ranthambore National Park, one of India's premier wildlife destinations, where you can also see leopards, deer, and various bird species.",
			Location:    "Ranthambore, Rajasthan",
			Price:       decimal.NewFromInt(3500),
			Duration:    "6 hours",
			Category:    "Wildlife",
			ImageURL:    "https://images.unsplash.com/photo-1549366021-9f761d450615?w=800&q=80",
			Rating:      4.6,
			ReviewCount: 445,
			Highlights: []string{
				"Spot Bengal tigers",
				"Expert naturalist guide",
				"Morning and evening safaris",
				"Photography opportunities",
			},
			Included: []string{
				"Safari jeep with driver",
				"Park entry fees",
				"Naturalist guide",
				"Binoculars",
				"Refreshments",
			},
		},
		{
			Title:       "Paragliding in Bir Billing",
			Description: "Soar like a bird over the stunning Kangra Valley. Bir Billing is renowned as one of the best paragliding sites in the world. Experience the thrill of flying with experienced pilots in tandem flights suitable for beginners.",
			Location:    "Bir Billing, Himachal Pradesh",
			Price:       decimal.NewFromInt(2500),
			Duration:    "2 hours",
			Category:    "Adventure",
			ImageURL:    "https://images.unsplash.com/photo-1512225530990-13c4a0f6c3c8?w=800&q=80",
			Rating:      4.9,
			ReviewCount: 678,
			Highlights: []string{
				"Tandem flight with expert pilot",
				"Breathtaking valley views",
				"GoPro video recording",
				"Safety certified equipment",
			},
			Included: []string{
				"Tandem paragliding flight",
				"Safety equipment",
				"Professional pilot",
				"Flight video",
				"Insurance",
			},
		},
		{
			Title:       "Backwater Houseboat Cruise",
			Description: "Relax and unwind on a traditional Kerala houseboat as you cruise through the serene backwaters. Enjoy authentic Kerala cuisine, witness village life along the banks, and experience the tranquility of this unique ecosystem.",
			Location:    "Alleppey, Kerala",
			Price:       decimal.NewFromInt(15000),
			Duration:    "24 hours",
			Category:    "Leisure",
			ImageURL:    "https://images.unsplash.com/photo-1605640840605-14ac1855827b?w=800&q=80",
			Rating:      4.8,
			ReviewCount: 523,
			Highlights: []string{
				"Traditional Kerala houseboat",
				"Authentic local cuisine",
				"Overnight stay on water",
				"Scenic backwater views",
			},
			Included: []string{
				"Houseboat accommodation",
				"All meals (lunch, dinner, breakfast)",
				"Crew and guide",
				"Sightseeing stops",
				"Welcome drinks",
			},
		},
		{
			Title:       "Desert Camping in Jaisalmer",
			Description: "Experience the magic of the Thar Desert with an overnight camping adventure. Enjoy camel rides, traditional Rajasthani folk performances, stargazing, and authentic desert cuisine under the open sky.",
			Location:    "Jaisalmer, Rajasthan",
			Price:       decimal.NewFromInt(3000),
			Duration:    "18 hours",
			Category:    "Camping",
			ImageURL:    "https://images.unsplash.com/photo-1519904981063-b0cf448d479e?w=800&q=80",
			Rating:      4.7,
			ReviewCount: 389,
			Highlights: []string{
				"Camel safari at sunset",
				"Traditional folk performances",
				"Stargazing experience",
				"Bonfire and BBQ dinner",
			},
			Included: []string{
				"Desert camp accommodation",
				"Camel ride",
				"Cultural performances",
				"Dinner and breakfast",
				"Bonfire",
			},
		},
		{
			Title:       "White Water Rafting in Rishikesh",
			Description: "Challenge yourself with an exhilarating white water rafting experience on the Ganges River. Navigate through rapids of varying difficulty levels with experienced guides ensuring your safety and fun.",
			Location:    "Rishikesh, Uttarakhand",
			Price:       decimal.NewFromInt(1500),
			Duration:    "3 hours",
			Category:    "Water Sports",
			ImageURL:    "https://images.unsplash.com/photo-1501594907352-04cda38ebc29?w=800&q=80",
			Rating:      4.8,
			ReviewCount: 712,
			Highlights: []string{
				"Grade II-III rapids",
				"Professional river guides",
				"Safety equipment provided",
				"Beach camping option",
			},
			Included: []string{
				"Rafting equipment",
				"Life jackets and helmets",
				"Professional guide",
				"Safety briefing",
				"Changing rooms",
			},
		},
	}
}
