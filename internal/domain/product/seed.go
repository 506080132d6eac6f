// internal/domain/product/seed.go
package product

// DefaultCatalog returns the built-in storefront catalog
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(DefaultProducts(), DefaultCategories())
	if err != nil {
		panic("product: built-in catalog is invalid: " + err.Error())
	}
	return catalog
}

func dollars(amount int64) int64 { return amount * 100 }

func salePrice(amount int64) *int64 {
	cents := dollars(amount)
	return &cents
}

// sizeTable converts per-size dollar surcharges into cents
func sizeTable(adjustments map[Size]int64) map[Size]int64 {
	table := make(map[Size]int64, len(adjustments))
	for size, amount := range adjustments {
		table[size] = dollars(amount)
	}
	return table
}

// DefaultCategories returns the storefront categories
func DefaultCategories() []Category {
	return []Category{
		{
			ID:          "memory-foam",
			Name:        "Memory Foam Mattresses",
			Slug:        "memory-foam",
			Description: "Contour-hugging comfort that relieves pressure points and promotes proper spinal alignment.",
			Image:       "https://images.pexels.com/photos/6782567/pexels-photo-6782567.jpeg",
		},
		{
			ID:          "hybrid",
			Name:        "Hybrid Mattresses",
			Slug:        "hybrid",
			Description: "The perfect balance of supportive coils and contouring foam layers for the best of both worlds.",
			Image:       "https://images.pexels.com/photos/6782447/pexels-photo-6782447.jpeg",
		},
		{
			ID:          "innerspring",
			Name:        "Innerspring Mattresses",
			Slug:        "innerspring",
			Description: "Traditional coil support with a responsive feel and excellent breathability.",
			Image:       "https://images.pexels.com/photos/6782445/pexels-photo-6782445.jpeg",
		},
		{
			ID:          "latex",
			Name:        "Latex Mattresses",
			Slug:        "latex",
			Description: "Natural, eco-friendly mattresses with responsive support and excellent durability.",
			Image:       "https://images.pexels.com/photos/6782453/pexels-photo-6782453.jpeg",
		},
		{
			ID:          "air-bed",
			Name:        "Adjustable Air Beds",
			Slug:        "air-bed",
			Description: "Customizable firmness settings for personalized comfort that can change with your needs.",
			Image:       "https://images.pexels.com/photos/6782574/pexels-photo-6782574.jpeg",
		},
		{
			ID:          "accessories",
			Name:        "Bedding Accessories",
			Slug:        "accessories",
			Description: "Pillows, protectors, sheets, and more to complete your perfect sleep environment.",
			Image:       "https://images.pexels.com/photos/6316066/pexels-photo-6316066.jpeg",
		},
	}
}

// DefaultProducts returns the mattress line-up
func DefaultProducts() []Product {
	return []Product{
		{
			ID:        "memory-foam-cloud",
			Name:      "Cloud Memory Foam Mattress",
			Category:  "memory-foam",
			Type:      "Memory Foam",
			Price:     dollars(899),
			SalePrice: salePrice(699),
			SizeAdjustments: sizeTable(map[Size]int64{
				SizeTwin: 0, SizeTwinXL: 50, SizeFull: 150, SizeQueen: 200, SizeKing: 500, SizeCalKing: 500,
			}),
			Description:      "Multiple layers of high-density memory foam contour to your body, relieving pressure points and promoting proper spinal alignment. A gel-infused top layer keeps you cool while the supportive base prevents sagging.",
			ShortDescription: "Premium memory foam with cooling gel technology for the perfect night's sleep.",
			Features: []string{
				"Cooling gel-infused memory foam",
				"Medium-firm support (6/10 firmness)",
				"Motion isolation technology",
				"Breathable, hypoallergenic cover",
				"CertiPUR-US® certified foams",
				"Removable, washable cover",
				"Edge support reinforcement",
			},
			Specifications: map[string]string{
				"Height":           "12 inches",
				"Cover Material":   "Tencel™ blend fabric",
				"Comfort Layer":    "2\" Cooling gel memory foam",
				"Transition Layer": "2\" Responsive comfort foam",
				"Support Core":     "8\" High-density base foam",
				"Certifications":   "CertiPUR-US®, OEKO-TEX®",
				"Made In":          "USA",
			},
			Images: []string{
				"https://images.pexels.com/photos/6585598/pexels-photo-6585598.jpeg",
				"https://images.pexels.com/photos/6585750/pexels-photo-6585750.jpeg",
				"https://images.pexels.com/photos/6782567/pexels-photo-6782567.jpeg",
			},
			Rating:          4.7,
			ReviewCount:     1243,
			InStock:         true,
			IsBestseller:    true,
			Firmness:        6,
			Materials:       []string{"Memory Foam", "Cooling Gel", "High-Density Support Foam"},
			Warranty:        "15 years limited",
			TrialPeriodDays: 100,
		},
		{
			ID:        "luxury-hybrid",
			Name:      "Luxury Hybrid Mattress",
			Category:  "hybrid",
			Type:      "Hybrid",
			Price:     dollars(1299),
			SalePrice: salePrice(999),
			SizeAdjustments: sizeTable(map[Size]int64{
				SizeTwin: 0, SizeTwinXL: 50, SizeFull: 150, SizeQueen: 300, SizeKing: 600, SizeCalKing: 600,
			}),
			Description:      "Premium memory foam over individually wrapped coils. Five zones of pocketed coils deliver targeted support and a reinforced perimeter maximizes the usable sleep surface.",
			ShortDescription: "The perfect combination of supportive coils and contouring memory foam for luxurious sleep.",
			Features: []string{
				"Individually wrapped pocket coils",
				"Copper-infused memory foam",
				"5-zone targeted support system",
				"EdgeShield™ reinforced perimeter",
				"Euro pillow top with quilted cover",
				"Minimal motion transfer",
				"Compatible with adjustable bases",
			},
			Specifications: map[string]string{
				"Height":           "14 inches",
				"Cover Material":   "Organic cotton and wool blend",
				"Comfort Layer":    "3\" Copper-infused memory foam",
				"Transition Layer": "2\" Responsive latex alternative",
				"Support Core":     "8\" Individually wrapped coils (1,024 count in Queen)",
				"Edge Support":     "EdgeShield™ reinforced perimeter",
				"Certifications":   "CertiPUR-US®, GREENGUARD Gold",
				"Made In":          "USA",
			},
			Images: []string{
				"https://images.pexels.com/photos/6782447/pexels-photo-6782447.jpeg",
				"https://images.pexels.com/photos/6782581/pexels-photo-6782581.jpeg",
				"https://images.pexels.com/photos/6782426/pexels-photo-6782426.jpeg",
			},
			Rating:          4.9,
			ReviewCount:     856,
			InStock:         true,
			IsNew:           true,
			Firmness:        7,
			Materials:       []string{"Pocketed Coils", "Memory Foam", "Copper-Infused Foam", "Organic Cotton"},
			Warranty:        "20 years limited",
			TrialPeriodDays: 120,
		},
		{
			ID:        "essential-spring",
			Name:      "Essential Spring Mattress",
			Category:  "innerspring",
			Type:      "Innerspring",
			Price:     dollars(599),
			SalePrice: salePrice(499),
			SizeAdjustments: sizeTable(map[Size]int64{
				SizeTwin: 0, SizeTwinXL: 50, SizeFull: 100, SizeQueen: 150, SizeKing: 350, SizeCalKing: 350,
			}),
			Description:      "Traditional Bonnell coil support topped with quilted foam padding. The breathable design promotes airflow and the damask cover adds a touch of luxury to a budget-friendly option.",
			ShortDescription: "Traditional innerspring support at an affordable price with quality construction.",
			Features: []string{
				"Bonnell coil support system",
				"Quilted foam comfort layer",
				"Breathable design for cooling",
				"Damask quilted cover",
				"Medium-firm feel",
				"Durable border rod for edge support",
				"Budget-friendly quality",
			},
			Specifications: map[string]string{
				"Height":         "10 inches",
				"Cover Material": "Quilted damask fabric",
				"Comfort Layer":  "1.5\" Quilted foam",
				"Support Core":   "8\" Bonnell coil system (460 coils in Queen)",
				"Edge Support":   "Heavy gauge border rod",
				"Certifications": "CertiPUR-US®",
				"Made In":        "USA",
			},
			Images: []string{
				"https://images.pexels.com/photos/6782445/pexels-photo-6782445.jpeg",
				"https://images.pexels.com/photos/6782443/pexels-photo-6782443.jpeg",
				"https://images.pexels.com/photos/6782438/pexels-photo-6782438.jpeg",
			},
			Rating:          4.3,
			ReviewCount:     512,
			InStock:         true,
			Firmness:        6,
			Materials:       []string{"Bonnell Coils", "Quilted Foam", "Damask Fabric"},
			Warranty:        "10 years limited",
			TrialPeriodDays: 60,
		},
		{
			ID:        "premium-latex",
			Name:      "Natural Latex Luxury Mattress",
			Category:  "latex",
			Type:      "Latex",
			Price:     dollars(1599),
			SalePrice: salePrice(1399),
			SizeAdjustments: sizeTable(map[Size]int64{
				SizeTwin: 0, SizeTwinXL: 100, SizeFull: 300, SizeQueen: 500, SizeKing: 900, SizeCalKing: 900,
			}),
			Description:      "Natural Talalay latex from sustainable rubber trees gives exceptional pressure relief with a responsive feel. The organic cotton and wool cover regulates temperature year-round.",
			ShortDescription: "Eco-friendly natural latex with customizable firmness for a luxurious, responsive sleep experience.",
			Features: []string{
				"100% natural Talalay latex",
				"Organic cotton and wool cover",
				"Customizable firmness layers",
				"Naturally cooling and breathable",
				"Hypoallergenic and antimicrobial",
				"Exceptional durability",
				"Minimal motion transfer",
			},
			Specifications: map[string]string{
				"Height":         "12 inches",
				"Cover Material": "GOTS certified organic cotton and wool",
				"Comfort Layer":  "3\" Natural Talalay latex (customizable ILD)",
				"Support Core":   "6\" Natural Dunlop latex core",
				"Base Layer":     "3\" High-density support latex",
				"Certifications": "GOLS, GOTS, OEKO-TEX®, eco-INSTITUT",
				"Made In":        "USA with imported materials",
			},
			Images: []string{
				"https://images.pexels.com/photos/6782453/pexels-photo-6782453.jpeg",
				"https://images.pexels.com/photos/6782455/pexels-photo-6782455.jpeg",
				"https://images.pexels.com/photos/6782456/pexels-photo-6782456.jpeg",
			},
			Rating:          4.8,
			ReviewCount:     324,
			InStock:         true,
			Firmness:        5,
			Materials:       []string{"Natural Talalay Latex", "Natural Dunlop Latex", "Organic Cotton", "Organic Wool"},
			Warranty:        "25 years limited",
			TrialPeriodDays: 180,
		},
		{
			ID:        "cooling-gel",
			Name:      "Arctic Gel Cooling Mattress",
			Category:  "memory-foam",
			Type:      "Cooling Memory Foam",
			Price:     dollars(1099),
			SalePrice: salePrice(899),
			SizeAdjustments: sizeTable(map[Size]int64{
				SizeTwin: 0, SizeTwinXL: 50, SizeFull: 150, SizeQueen: 200, SizeKing: 500, SizeCalKing: 500,
			}),
			Description:      "Arctic Gel memory foam and a phase-change cover pull heat away from the body. An open-cell structure keeps air moving for sleepers who run hot.",
			ShortDescription: "Advanced cooling technology with phase-change materials for hot sleepers.",
			Features: []string{
				"Arctic Gel cooling technology",
				"Phase-change cover material",
				"Open-cell foam structure for airflow",
				"Medium-firm support level",
				"Moisture-wicking cover",
				"Minimal off-gassing",
				"Compatible with all bed frames",
			},
			Specifications: map[string]string{
				"Height":           "12 inches",
				"Cover Material":   "Phase-change cooling fabric",
				"Comfort Layer":    "2\" Arctic Gel memory foam",
				"Transition Layer": "2\" Open-cell responsive foam",
				"Support Core":     "8\" High-density base foam",
				"Certifications":   "CertiPUR-US®",
				"Made In":          "USA",
			},
			Images: []string{
				"https://images.pexels.com/photos/6782571/pexels-photo-6782571.jpeg",
				"https://images.pexels.com/photos/6782572/pexels-photo-6782572.jpeg",
				"https://images.pexels.com/photos/6782573/pexels-photo-6782573.jpeg",
			},
			Rating:          4.6,
			ReviewCount:     487,
			InStock:         true,
			IsNew:           true,
			Firmness:        6,
			Materials:       []string{"Arctic Gel Memory Foam", "Open-Cell Foam", "Phase-Change Fabric"},
			Warranty:        "15 years limited",
			TrialPeriodDays: 100,
		},
		{
			ID:        "adjustable-air",
			Name:      "CustomAir Adjustable Mattress",
			Category:  "air-bed",
			Type:      "Adjustable Air",
			Price:     dollars(1899),
			SalePrice: salePrice(1699),
			// not sold in twin
			SizeAdjustments: sizeTable(map[Size]int64{
				SizeTwinXL: 0, SizeFull: 200, SizeQueen: 400, SizeKing: 900, SizeCalKing: 900,
			}),
			Description:      "Dual-sided adjustability lets each sleeper dial in firmness from ultra-plush to extra-firm with 50 settings. Built-in sensors track sleep quality and make micro-adjustments through the night.",
			ShortDescription: "Dual-sided adjustable firmness with 50 comfort settings and sleep tracking technology.",
			Features: []string{
				"Dual-zone adjustability (50 settings)",
				"Whisper-quiet pump technology",
				"Built-in sleep tracking sensors",
				"Responsive latex-alternative top layer",
				"Memory foam comfort layer",
				"Removable, washable cover",
				"Smartphone app control",
			},
			Specifications: map[string]string{
				"Height":         "13 inches",
				"Cover Material": "Moisture-wicking performance fabric",
				"Comfort Layer":  "2\" Latex-alternative foam",
				"Support Layer":  "3\" Gel memory foam",
				"Support Core":   "8\" Dual air chambers with reinforced perimeter",
				"Technology":     "Bluetooth connectivity, sleep sensors",
				"Certifications": "CertiPUR-US®, UL Certified",
				"Made In":        "USA",
			},
			Images: []string{
				"https://images.pexels.com/photos/6782574/pexels-photo-6782574.jpeg",
				"https://images.pexels.com/photos/6782575/pexels-photo-6782575.jpeg",
				"https://images.pexels.com/photos/6782576/pexels-photo-6782576.jpeg",
			},
			Rating:          4.7,
			ReviewCount:     213,
			InStock:         true,
			Firmness:        1, // adjustable 1-10
			Materials:       []string{"Air Chambers", "Memory Foam", "Latex Alternative", "Performance Fabric"},
			Warranty:        "25 years limited",
			TrialPeriodDays: 120,
		},
	}
}
