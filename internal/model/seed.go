package model

// DefaultCatalog is the starter inventory loaded on first boot.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID: "LAP-001", Part: "LAP-001", Slug: "dell-latitude-7430-business-laptop",
			Name: "Dell Latitude 7430 Business Laptop", Category: "Laptops & Computers",
			Brand: "Dell", Image: "/images/dell-laptop.png", Price: 129999,
			Rating: 4.8, NumReviews: 156, CountInStock: 15, IsFeatured: true,
			Description: "14-inch enterprise laptop with Intel Core i7-1265U, 16GB RAM, 512GB NVMe SSD.",
		},
		{
			ID: "LAP-002", Part: "LAP-002", Slug: "hp-elitebook-840-g9-workstation",
			Name: "HP EliteBook 840 G9 Workstation", Category: "Laptops & Computers",
			Brand: "HP", Image: "/images/ai3.png", Price: 149999,
			Rating: 4.7, NumReviews: 134, CountInStock: 12,
			Description: "Premium business laptop featuring 12th Gen Intel Core i7, 32GB DDR5 RAM, 1TB SSD.",
		},
		{
			ID: "DES-001", Part: "DES-001", Slug: "dell-optiplex-7090-desktop",
			Name: "Dell OptiPlex 7090 Desktop Tower", Category: "Laptops & Computers",
			Brand: "Dell", Image: "/images/optiplex.png", Price: 89999,
			Rating: 4.6, NumReviews: 89, CountInStock: 25,
			Description: "Reliable desktop computer with Intel Core i5-11500, 16GB RAM, 512GB SSD.",
		},
		{
			ID: "WKS-001", Part: "WKS-001", Slug: "hp-z2-g9-tower-workstation",
			Name: "HP Z2 G9 Tower Workstation", Category: "Laptops & Computers",
			Brand: "HP", Image: "/images/hp-z2.png", Price: 219999,
			Rating: 4.9, NumReviews: 67, CountInStock: 8, IsFeatured: true,
			Description: "Professional workstation with Intel Xeon processor, 64GB ECC RAM, NVIDIA RTX A2000.",
		},
		{
			ID: "MAC-001", Part: "MAC-001", Slug: "macbook-pro-14-m3-pro",
			Name: "Apple MacBook Pro 14-inch M3 Pro", Category: "Laptops & Computers",
			Brand: "Apple", Image: "/images/apple.png", Price: 199999,
			Rating: 4.9, NumReviews: 234, CountInStock: 18,
			Description: "Powerful laptop with M3 Pro chip, 18GB unified memory, 512GB SSD.",
		},
		{
			ID: "SRV-001", Part: "SRV-001", Slug: "dell-poweredge-t150-server",
			Name: "Dell PowerEdge T150 Server", Category: "Servers & Storage",
			Brand: "Dell", Image: "/images/poweredge.png", Price: 159999,
			Rating: 4.7, NumReviews: 45, CountInStock: 10,
			Description: "Entry-level tower server with Intel Xeon E-2314, 16GB RAM, 1TB HDD.",
		},
		{
			ID: "SRV-002", Part: "SRV-002", Slug: "hpe-proliant-dl380-gen10-plus",
			Name: "HPE ProLiant DL380 Gen10 Plus", Category: "Servers & Storage",
			Brand: "HPE", Image: "/images/unifi.png", Price: 349999,
			Rating: 4.8, NumReviews: 78, CountInStock: 6, IsFeatured: true,
			Description: "2U rack server with dual Intel Xeon Gold processors, 128GB RAM, hot-plug drives.",
		},
		{
			ID: "NAS-001", Part: "NAS-001", Slug: "synology-ds923-nas-storage",
			Name: "Synology DS923+ NAS Storage", Category: "Servers & Storage",
			Brand: "Synology", Image: "/images/synology.png", Price: 59999,
			Rating: 4.8, NumReviews: 167, CountInStock: 22,
			Description: "4-bay NAS with AMD Ryzen processor, 4GB RAM (expandable to 32GB).",
		},
	}
}
