package knowledge

// diseaseCatalogue lists the known diseases in lookup priority order.
var diseaseCatalogue = []Treatment{
	{
		Name:     "Tomato - Late blight",
		Cause:    "Caused by the water mold pathogen Phytophthora infestans",
		Symptoms: "Dark brown spots on leaves that spread rapidly, white fungal growth on undersides, fruit lesions",
		Treatment: []string{
			"Apply copper-based fungicides like Bordeaux mixture every 7-10 days",
			"Remove and destroy infected plant parts immediately",
			"Increase spacing between plants to improve air circulation",
			"Water at the base of plants in the morning to allow foliage to dry quickly",
			"Rotate crops with non-solanaceous plants for at least 2 years",
		},
		Prevention: "Plant resistant varieties, use raised beds for better drainage, apply preventative fungicide during humid weather, avoid overhead irrigation",
	},
	{
		Name:     "Tomato - Early blight",
		Cause:    "Fungal pathogen Alternaria solani that survives in soil and plant debris",
		Symptoms: "Dark concentric rings forming target-like patterns on lower leaves, leaf yellowing and dropping",
		Treatment: []string{
			"Apply fungicides containing chlorothalonil or copper at first sign of disease",
			"Remove infected leaves and destroy (do not compost)",
			"Mulch around plants to prevent soil splash onto leaves",
			"Stake plants to improve air circulation",
		},
		Prevention: "Practice crop rotation, use drip irrigation to keep foliage dry, apply mulch around plants, clean garden tools between use",
	},
	{
		Name:     "Tomato - Leaf mold",
		Cause:    "Fungus Passalora fulva (previously Fulvia fulva), common in greenhouse conditions",
		Symptoms: "Yellow patches on upper leaf surfaces with olive-green to gray fuzzy mold on undersides",
		Treatment: []string{
			"Apply fungicides containing chlorothalonil or copper",
			"Improve greenhouse ventilation immediately",
			"Remove severely infected leaves",
			"Reduce humidity below 85%",
		},
		Prevention: "Maintain good air circulation, avoid overhead watering, space plants adequately, use resistant varieties when possible",
	},
	{
		Name:     "Tomato - Septoria leaf spot",
		Cause:    "Fungus Septoria lycopersici that overwinters in plant debris",
		Symptoms: "Small dark spots with light centers and dark edges, beginning on lower leaves",
		Treatment: []string{
			"Apply fungicides with chlorothalonil, copper, or mancozeb",
			"Remove infected leaves promptly",
			"Avoid working with plants when wet",
			"Apply organic fungicides like copper octanoate or sulfur for organic gardens",
		},
		Prevention: "Practice crop rotation, remove plant debris after harvest, mulch around plants, avoid overhead irrigation",
	},
	{
		Name:     "Tomato - Bacterial spot",
		Cause:    "Bacterial pathogens Xanthomonas spp.",
		Symptoms: "Small dark spots on leaves, stems and fruits; spots may have yellow halos; fruit lesions are raised and scabby",
		Treatment: []string{
			"Apply copper-based bactericides weekly at first sign",
			"Remove infected plant parts",
			"Avoid overhead irrigation",
			"Disinfect garden tools and stakes between uses",
			"Use streptomycin sulfate in severe cases (where legally permitted)",
			"Apply copper-based products like Copper Hydroxide or Copper Oxychloride",
		},
		Prevention: "Use disease-free seeds and transplants, rotate crops for 2-3 years, avoid working with plants when wet, use drip irrigation",
	},
	{
		Name:     "Tomato - Leaf Curl Virus",
		Cause:    "Tomato Yellow Leaf Curl Virus (TYLCV) transmitted by whiteflies",
		Symptoms: "Upward curling of leaves, yellow leaf edges, stunted growth, flower drop, reduced fruit production",
		Treatment: []string{
			"Apply systemic insecticides containing Imidacloprid to control whitefly vectors",
			"Remove and destroy infected plants immediately to prevent spread",
			"Use reflective mulch to repel whiteflies",
			"Apply neem oil or insecticidal soap to control whitefly populations",
			"Install yellow sticky traps around plants to monitor and reduce whitefly populations",
		},
		Prevention: "Use virus-resistant tomato varieties, control weeds that host whiteflies, cover young plants with fine mesh, maintain clean garden area, rotate planting locations",
	},
	{
		Name:     "Tomato - Target Spot",
		Cause:    "Fungus Corynespora cassiicola that thrives in warm, humid conditions",
		Symptoms: "Concentric rings forming target-like spots on leaves, stems and fruits; leaf yellowing and premature drop",
		Treatment: []string{
			"Apply fungicides containing chlorothalonil, mancozeb, or azoxystrobin",
			"Prune plants to improve air circulation",
			"Remove infected leaves and fruit immediately",
			"Stake plants to keep foliage off the ground",
			"Apply copper-based fungicides as preventative measure",
		},
		Prevention: "Rotate crops, maintain adequate spacing between plants, avoid overhead irrigation, use mulch to prevent soil splash",
	},
	{
		Name:     "Tomato - Spider Mites",
		Cause:    "Two-spotted spider mites (Tetranychus urticae) that thrive in hot, dry conditions",
		Symptoms: "Stippling on leaves (tiny yellow/white spots), fine webbing on undersides of leaves, bronzing of foliage, leaf drop",
		Treatment: []string{
			"Spray plants forcefully with water to knock off mites",
			"Apply insecticidal soap or horticultural oil to all leaf surfaces",
			"Use miticides specifically labeled for spider mites in severe cases",
			"Introduce predatory mites as biological control",
			"Apply neem oil every 7 days until infestation is controlled",
		},
		Prevention: "Maintain proper plant humidity, regularly inspect plants, avoid water stress, keep plants well-watered during hot periods",
	},
	{
		Name:     "Apple - Scab",
		Cause:    "Fungus Venturia inaequalis that overwinters in fallen leaves",
		Symptoms: "Olive-green to brown velvety spots on leaves and fruits, scabby lesions on fruits",
		Treatment: []string{
			"Apply fungicides containing captan or sulfur at 7-10 day intervals",
			"Remove and destroy fallen leaves in autumn",
			"Prune trees to improve air circulation",
			"Thin fruit clusters to prevent fruit-to-fruit contact",
		},
		Prevention: "Plant resistant varieties, rake and destroy fallen leaves, apply preventative fungicides starting at bud break",
	},
	{
		Name:     "Apple - Black rot",
		Cause:    "Fungus Botryosphaeria obtusa that infects through wounds",
		Symptoms: "Circular purple or brown spots on leaves, fruit rot with concentric rings, branch cankers",
		Treatment: []string{
			"Prune out diseased branches 8 inches below visible infection",
			"Apply fungicides containing captan, myclobutanil, or thiophanate-methyl",
			"Remove mummified fruits from trees",
			"Improve tree vigor with proper fertilization",
		},
		Prevention: "Maintain tree health, remove dead wood promptly, protect trees from wounds, practice good sanitation",
	},
	{
		Name:     "Apple - Cedar Apple Rust",
		Cause:    "Fungus Gymnosporangium juniperi-virginianae that requires both apple and cedar/juniper to complete lifecycle",
		Symptoms: "Bright orange-yellow spots on leaves and fruit, orange protrusions on undersides of leaves, deformed fruit",
		Treatment: []string{
			"Apply fungicides containing myclobutanil or propiconazole at 7-14 day intervals",
			"Remove galls from nearby cedar/juniper trees during dormant season",
			"Prune to improve air circulation in the canopy",
			"Collect and destroy fallen infected leaves",
		},
		Prevention: "Plant resistant apple varieties, remove nearby cedar/juniper trees if possible, apply protective fungicides starting at bud break",
	},
	{
		Name:     "Apple - Fire Blight",
		Cause:    "Bacterium Erwinia amylovora that spreads through wind, rain and insects",
		Symptoms: "Blackened, shriveled shoots appearing as if burned, bacterial ooze, shepherd's crook appearance of shoots",
		Treatment: []string{
			"Prune infected branches at least 12 inches below visible infection during dry weather",
			"Sterilize pruning tools between cuts with 10% bleach or 70% alcohol",
			"Apply streptomycin sprays during bloom period (where legally permitted)",
			"Remove severely infected young trees entirely",
			"Apply copper-based products during dormant season",
		},
		Prevention: "Plant resistant varieties, avoid excessive nitrogen fertilization, avoid overhead irrigation, remove nearby wild hosts",
	},
	{
		Name:     "Corn - Common rust",
		Cause:    "Fungus Puccinia sorghi spread by airborne spores",
		Symptoms: "Small, reddish-brown pustules on leaves that release powdery spores when touched",
		Treatment: []string{
			"Apply fungicides containing azoxystrobin or propiconazole",
			"Time planting to avoid peak rust season",
			"Maintain plant vigor through proper fertilization",
			"Remove severely affected plants if detected early",
		},
		Prevention: "Plant resistant hybrids, schedule planting to avoid disease-favorable conditions, maintain weed control, ensure adequate plant spacing",
	},
	{
		Name:     "Corn - Northern Leaf Blight",
		Cause:    "Fungus Setosphaeria turcica (Exserohilum turcicum) that survives in crop debris",
		Symptoms: "Large, cigar-shaped gray-green to tan lesions on leaves, lesions develop primarily on upper leaves",
		Treatment: []string{
			"Apply fungicides containing azoxystrobin, propiconazole or pyraclostrobin",
			"Time applications at early disease detection or before tasseling",
			"Remove and destroy crop debris after harvest",
			"Rotate with non-host crops like soybeans or alfalfa",
		},
		Prevention: "Plant resistant hybrids, practice crop rotation for at least 1-2 years, till soil to bury crop residue, control grassy weeds",
	},
	{
		Name:     "Corn - Gray Leaf Spot",
		Cause:    "Fungus Cercospora zeae-maydis that survives in crop residue",
		Symptoms: "Rectangular lesions restricted by leaf veins, tan to gray color, lesions may coalesce killing entire leaves",
		Treatment: []string{
			"Apply fungicides containing strobilurin, triazole, or mixed-mode of action products",
			"Time applications between tasseling and early silking stages",
			"Maintain balanced soil fertility to promote plant health",
			"Remove or bury crop debris after harvest",
		},
		Prevention: "Plant resistant hybrids, rotate crops for 1-2 years, practice conservation tillage, avoid continuous corn production",
	},
	{
		Name:     "Potato - Late blight",
		Cause:    "Oomycete pathogen Phytophthora infestans, same as tomato late blight",
		Symptoms: "Water-soaked black/brown lesions on leaves, stems and tubers; white fuzzy growth in humid conditions",
		Treatment: []string{
			"Apply fungicides containing chlorothalonil, mancozeb, or copper at 5-7 day intervals",
			"Cut foliage completely and wait 2-3 weeks before harvest if infection is severe",
			"Destroy all infected plant material",
			"Harvest during dry weather and allow tubers to cure properly",
		},
		Prevention: "Plant certified disease-free seed potatoes, plant resistant varieties, avoid overhead irrigation, practice crop rotation",
	},
	{
		Name:     "Potato - Early Blight",
		Cause:    "Fungus Alternaria solani that overwinters in plant debris and soil",
		Symptoms: "Dark brown to black target-like concentric rings on older leaves, yellowing and leaf drop, lesions on stems and tubers",
		Treatment: []string{
			"Apply fungicides containing chlorothalonil, azoxystrobin, or copper-based products",
			"Remove and destroy infected lower leaves",
			"Hill soil around plants to prevent spores from washing onto tubers",
			"Maintain adequate nutrition, especially nitrogen",
			"Improve air circulation by proper spacing",
		},
		Prevention: "Practice 3-4 year crop rotation, plant certified disease-free seed potatoes, avoid overhead irrigation, destroy volunteer potatoes",
	},
	{
		Name:     "Grape - Black rot",
		Cause:    "Fungus Guignardia bidwellii that overwinters in mummified berries",
		Symptoms: "Circular tan spots with dark borders on leaves, black wrinkled berries",
		Treatment: []string{
			"Apply fungicides containing myclobutanil, mancozeb, or captan",
			"Remove mummified fruits from vines and ground",
			"Prune to improve air circulation",
			"Thin leaf canopy around fruit clusters",
		},
		Prevention: "Clean up all fallen fruits and leaves, prune for good air circulation, begin preventative spraying early in season",
	},
	{
		Name:     "Grape - Downy Mildew",
		Cause:    "Oomycete Plasmopara viticola that thrives in humid conditions",
		Symptoms: "Yellow to reddish-brown oily spots on upper leaf surface, white downy growth on leaf undersides, young fruit turns brown and shrivels",
		Treatment: []string{
			"Apply copper-based fungicides or phosphorus acid products",
			"Spray both sides of leaves thoroughly",
			"Remove infected leaves and fruit",
			"Improve air circulation through pruning",
			"Apply fungicides containing mancozeb, captan, or metalaxyl in severe cases",
		},
		Prevention: "Train vines for good air circulation, avoid overhead irrigation, plant resistant varieties, apply preventative fungicides before rainy periods",
	},
	{
		Name:     "Strawberry - Leaf Scorch",
		Cause:    "Fungus Diplocarpon earlianum that overwinters in infected leaves",
		Symptoms: "Small purple to red spots on upper leaf surface that enlarge to resemble sunscald, leaf edges curl upward",
		Treatment: []string{
			"Apply fungicides containing captan or myclobutanil",
			"Remove and destroy infected leaves",
			"Ensure adequate plant spacing for air circulation",
			"Avoid overhead irrigation",
			"Apply copper sulfate or Bordeaux mixture in early spring",
		},
		Prevention: "Plant resistant varieties, practice annual renovation, use plastic mulch, practice crop rotation, maintain narrow plant rows",
	},
	{
		Name:     "Bell Pepper - Bacterial Spot",
		Cause:    "Bacteria Xanthomonas campestris pv. vesicatoria spread by water splash and seeds",
		Symptoms: "Small, raised, water-soaked spots on leaves, stems and fruits that become brown and scabby, leaves with yellow halos",
		Treatment: []string{
			"Apply copper-based bactericides at first sign of disease",
			"Rotate with copper and mancozeb mixtures to prevent resistance",
			"Remove infected plant parts and destroy",
			"Avoid working with wet plants",
			"Use plastic mulch to prevent soil splash",
		},
		Prevention: "Use disease-free seeds and transplants, practice crop rotation, use drip irrigation, space plants adequately",
	},
	{
		Name:     "Bell Pepper - Powdery Mildew",
		Cause:    "Fungus Leveillula taurica that thrives in warm conditions with high humidity",
		Symptoms: "White powdery patches on upper and lower leaf surfaces, yellowing leaves, premature leaf drop",
		Treatment: []string{
			"Apply fungicides containing sulfur, potassium bicarbonate, or neem oil",
			"Remove heavily infected leaves",
			"Improve air circulation around plants",
			"Apply water-based silicon sprays as preventative",
			"Use biological fungicides containing Bacillus subtilis",
		},
		Prevention: "Plant resistant varieties, maintain proper plant spacing, avoid excessive nitrogen fertilization",
	},
}
