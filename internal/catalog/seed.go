package catalog

const imageQuery = "?auto=compress&cs=tinysrgb&w=800"

// SeedProducts returns the products written on first start. A fresh slice is
// returned each call so callers may not mutate the shared set.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Premium Wireless Headphones",
			Price:       299,
			Image:       "https://images.pexels.com/photos/3394651/pexels-photo-3394651.jpeg" + imageQuery,
			Description: "Experience crystal-clear audio with our premium wireless headphones featuring active noise cancellation and 30-hour battery life.",
			Category:    "Electronics",
			InStock:     true,
			Rating:      4.8,
			Features:    []string{"Active Noise Cancellation", "30h Battery Life", "Fast Charging", "Premium Materials"},
		},
		{
			ID:          2,
			Name:        "Professional Camera Lens",
			Price:       1299,
			Image:       "https://images.pexels.com/photos/90946/pexels-photo-90946.jpeg" + imageQuery,
			Description: "Capture stunning photographs with this professional-grade camera lens designed for professional photographers and enthusiasts.",
			Category:    "Photography",
			InStock:     true,
			Rating:      4.9,
			Features:    []string{"85mm f/1.4", "Weather Sealed", "Ultra-Sharp", "Professional Grade"},
		},
		{
			ID:          3,
			Name:        "Luxury Smartwatch",
			Price:       799,
			Image:       "https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg" + imageQuery,
			Description: "Stay connected in style with our luxury smartwatch featuring health monitoring, GPS, and premium materials.",
			Category:    "Wearables",
			InStock:     true,
			Rating:      4.7,
			Features:    []string{"Health Monitoring", "GPS Tracking", "7-Day Battery", "Premium Design"},
		},
		{
			ID:          4,
			Name:        "Gaming Mechanical Keyboard",
			Price:       189,
			Image:       "https://images.pexels.com/photos/841228/pexels-photo-841228.jpeg" + imageQuery,
			Description: "Elevate your gaming experience with our premium mechanical keyboard featuring RGB lighting and tactile switches.",
			Category:    "Gaming",
			InStock:     true,
			Rating:      4.6,
			Features:    []string{"Mechanical Switches", "RGB Lighting", "Gaming Optimized", "Durable Build"},
		},
		{
			ID:          5,
			Name:        "Wireless Charging Pad",
			Price:       89,
			Image:       "https://images.pexels.com/photos/4219654/pexels-photo-4219654.jpeg" + imageQuery,
			Description: "Charge your devices wirelessly with our sleek and efficient charging pad compatible with all Qi-enabled devices.",
			Category:    "Accessories",
			InStock:     true,
			Rating:      4.5,
			Features:    []string{"Fast Charging", "Universal Compatibility", "Sleek Design", "Safety Features"},
		},
		{
			ID:          6,
			Name:        "Premium Coffee Machine",
			Price:       449,
			Image:       "https://images.pexels.com/photos/4226805/pexels-photo-4226805.jpeg" + imageQuery,
			Description: "Brew barista-quality coffee at home with our premium espresso machine featuring precision temperature control.",
			Category:    "Home & Kitchen",
			InStock:     true,
			Rating:      4.8,
			Features:    []string{"15-bar Pressure", "Milk Frother", "Programmable", "Premium Build"},
		},
	}
}
